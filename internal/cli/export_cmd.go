package cli

import (
	"context"
	"fmt"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var start, end, customer string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download receipts as CSV",
		Long:  "Download receipts as a CSV file. Without filters the full history is exported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			if (start == "") != (end == "") {
				return fmt.Errorf("--start and --end must be given together")
			}

			ctx := context.Background()
			var outcome *service.ExportOutcome
			var err error
			if start == "" && customer == "" {
				outcome, err = app.Export.ExportAll(ctx)
			} else {
				q := api.ReceiptQuery{StartDate: start, EndDate: end, Customer: customer}
				outcome, err = app.Export.ExportFiltered(ctx, q)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d receipts to %s\n", outcome.TotalRecords, outcome.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Range start (YYYY-MM-DD), requires --end")
	cmd.Flags().StringVar(&end, "end", "", "Range end (YYYY-MM-DD), requires --start")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name substring")

	return cmd
}
