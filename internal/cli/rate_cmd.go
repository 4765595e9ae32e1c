package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show or update the labor rate",
	}

	cmd.AddCommand(newRateGetCmd(app), newRateSetCmd(app))

	return cmd
}

func newRateGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current labor rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			rate, err := app.Rates.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s/kg\n", formatter.Money(rate))
			return nil
		},
	}
}

func newRateSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <rate>",
		Short: "Update the labor rate (₹ per kg)",
		Long:  "Update the labor rate. The new rate applies to receipts created after the change; stored receipts keep their costs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			rate, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q", args[0])
			}
			if err := app.Rates.Update(context.Background(), rate); err != nil {
				return err
			}
			fmt.Printf("Labor rate set to %s/kg\n", formatter.Money(rate))
			return nil
		},
	}
}
