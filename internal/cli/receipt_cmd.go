package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/spf13/cobra"
)

func newReceiptsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "List, add, show, and delete receipts",
	}

	cmd.AddCommand(
		newReceiptsListCmd(app),
		newReceiptsAddCmd(app),
		newReceiptsShowCmd(app),
		newReceiptsRemoveCmd(app),
	)

	return cmd
}

func newReceiptsListCmd(app *App) *cobra.Command {
	var date, start, end, customer, sortBy, sortOrder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List receipts with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			if (start == "") != (end == "") {
				return fmt.Errorf("--start and --end must be given together")
			}

			q := api.ReceiptQuery{
				Date:      date,
				StartDate: start,
				EndDate:   end,
				Customer:  customer,
				SortBy:    sortBy,
				SortOrder: sortOrder,
			}
			receipts, err := app.Receipts.Search(context.Background(), q)
			if err != nil {
				return err
			}
			if len(receipts) == 0 {
				fmt.Println("No receipts found")
				return nil
			}

			headers := []string{"ID", "Date", "Time", "Customer", "Items", "Weight", "Labor"}
			rows := make([][]string, 0, len(receipts))
			for _, r := range receipts {
				rows = append(rows, []string{
					strconv.Itoa(r.ID),
					r.Date,
					r.Time,
					formatter.CustomerOrDash(r.CustomerName),
					formatter.ItemsSummary(r.Items),
					formatter.Weight(r.TotalWeight),
					formatter.Money(r.TotalLaborCost),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Range start (YYYY-MM-DD), requires --end")
	cmd.Flags().StringVar(&end, "end", "", "Range end (YYYY-MM-DD), requires --start")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name substring")
	cmd.Flags().StringVar(&sortBy, "sort", api.SortByDate, "Sort field: date or labor_cost")
	cmd.Flags().StringVar(&sortOrder, "order", api.SortDesc, "Sort order: asc or desc")

	return cmd
}

func newReceiptsAddCmd(app *App) *cobra.Command {
	var customer, notes string
	var items []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a receipt from item specs",
		Long: `Create a receipt. Each --item is "name:weight" or "name:weight:dimension",
for example --item "Angle:10:8x8 feet" --item "Rod:5".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			draft := domain.NewReceiptDraft()
			draft.CustomerName = customer
			draft.Notes = notes
			draft.Items = draft.Items[:0]
			for _, spec := range items {
				item, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				draft.Items = append(draft.Items, item)
			}

			receipt, err := app.Receipts.Create(context.Background(), draft)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReceiptTicket(receipt))
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer name (optional)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes (optional)")
	cmd.Flags().StringArrayVar(&items, "item", nil, `Item spec "name:weight[:dimension]" (repeatable)`)
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// parseItemSpec splits "name:weight[:dimension]" into a draft row. The
// weight text is kept verbatim; validation happens at submission like it
// does in the composer.
func parseItemSpec(spec string) (domain.ItemDraft, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return domain.ItemDraft{}, fmt.Errorf("invalid item %q: want name:weight[:dimension]", spec)
	}
	item := domain.ItemDraft{
		Name:   strings.TrimSpace(parts[0]),
		Weight: strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		item.Dimension = strings.TrimSpace(parts[2])
	}
	return item, nil
}

func newReceiptsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one receipt as a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid receipt id %q", args[0])
			}
			receipt, err := app.Receipts.Get(context.Background(), id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReceiptTicket(receipt))
			return nil
		},
	}
}

func newReceiptsRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a receipt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid receipt id %q", args[0])
			}
			if !yes {
				return fmt.Errorf("deletion is permanent; re-run with --yes to confirm")
			}
			if err := app.Receipts.Delete(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Receipt #%d deleted\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")

	return cmd
}
