package formatter

import (
	"fmt"
	"strings"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/shopspring/decimal"
)

// Money formats a rupee amount with two decimals, e.g. "₹750.00".
func Money(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// MoneyDecimal formats a decimal rupee amount with two decimals.
func MoneyDecimal(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// Weight formats a kilogram amount with two decimals, e.g. "15.00 kg".
func Weight(kg float64) string {
	return fmt.Sprintf("%.2f kg", kg)
}

// WeightDecimal formats a decimal kilogram amount with two decimals.
func WeightDecimal(kg decimal.Decimal) string {
	return kg.StringFixed(2) + " kg"
}

// ItemsSummary joins a receipt's items into one line:
// "Angle (10kg) - 8x8 feet, Rod (5kg)".
func ItemsSummary(items []api.ReceiptItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		text := fmt.Sprintf("%s (%gkg)", item.ItemName, item.WeightKg)
		if item.Dimension != "" {
			text += " - " + item.Dimension
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

// CustomerOrDash returns the customer name, or "-" for walk-ins.
func CustomerOrDash(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// FormatReceiptTicket renders a receipt as a printable ticket: business
// header, item table, totals row, and notes.
func FormatReceiptTicket(r *api.Receipt) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Nav Durga Steel") + "\n")
	b.WriteString(fmt.Sprintf("Receipt #%d\n", r.ID))
	b.WriteString(Dim(fmt.Sprintf("Date: %s | Time: %s", r.Date, r.Time)) + "\n")
	if r.CustomerName != "" {
		b.WriteString("Customer: " + Bold(r.CustomerName) + "\n")
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Items)+1)
	for _, item := range r.Items {
		dimension := item.Dimension
		if dimension == "" {
			dimension = "-"
		}
		rows = append(rows, []string{
			item.ItemName,
			Weight(item.WeightKg),
			dimension,
			Money(item.LaborCost),
		})
	}
	rows = append(rows, []string{
		Bold("Total"),
		Bold(Weight(r.TotalWeight)),
		"-",
		Bold(Money(r.TotalLaborCost)),
	})
	b.WriteString(RenderTable([]string{"Item", "Weight", "Dimension/Quantity", "Labor Cost"}, rows))

	if r.Notes != "" {
		b.WriteString("\n" + Bold("Notes:") + " " + r.Notes + "\n")
	}

	return b.String()
}

// FormatReceiptRows renders receipts as table rows for list views.
// withDate adds a leading date column for multi-day listings.
func FormatReceiptRows(receipts []api.Receipt, withDate bool) [][]string {
	rows := make([][]string, 0, len(receipts))
	for _, r := range receipts {
		row := []string{}
		if withDate {
			row = append(row, r.Date)
		}
		row = append(row,
			r.Time,
			CustomerOrDash(r.CustomerName),
			ItemsSummary(r.Items),
			Weight(r.TotalWeight),
			Money(r.TotalLaborCost),
		)
		rows = append(rows, row)
	}
	return rows
}
