package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show one day's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			s, err := app.Summaries.ForDate(context.Background(), date)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.StyleHeader.Render(s.Date))
			fmt.Printf("Receipts  %d\n", s.TotalReceipts)
			fmt.Printf("Weight    %s\n", formatter.Weight(s.TotalWeight))
			fmt.Printf("Labor     %s\n", formatter.Money(s.TotalLaborCost))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to summarize (YYYY-MM-DD, default today)")

	return cmd
}

func newMonthlyCmd(app *App) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show a month's totals with a per-day breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			now := time.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}

			report, err := app.Summaries.Monthly(context.Background(), year, month)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.StyleHeader.Render(fmt.Sprintf("%s %d", time.Month(report.Month), report.Year)))
			fmt.Printf("Receipts  %d\n", report.TotalReceipts)
			fmt.Printf("Weight    %s\n", formatter.Weight(report.TotalWeight))
			fmt.Printf("Labor     %s\n\n", formatter.Money(report.TotalLaborCost))

			if len(report.Days) == 0 {
				fmt.Println("No receipts this month")
				return nil
			}

			rows := make([][]string, 0, len(report.Days))
			for _, day := range report.Days {
				rows = append(rows, []string{
					day.Date,
					strconv.Itoa(day.Receipts),
					formatter.Weight(day.Weight),
					formatter.Money(day.LaborCost),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"Date", "Receipts", "Weight", "Labor"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default current)")

	return cmd
}
