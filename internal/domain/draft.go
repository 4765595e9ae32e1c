package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemDraft is one editable line of a receipt being composed. Fields hold
// raw text as typed; nothing is validated until submission.
type ItemDraft struct {
	Name      string
	Weight    string // decimal text; blank or unparseable counts as 0
	Dimension string // free-form, e.g. "8x8 feet", "10 units", "2.5m"
}

// LineItem is a validated item ready for submission.
type LineItem struct {
	Name      string
	WeightKg  decimal.Decimal
	Dimension string
}

// ReceiptDraft is the in-progress receipt. Exactly one draft exists at a
// time and it is only mutated from the UI loop. The backend owns all
// persisted receipt data; the draft is discarded on successful submission.
type ReceiptDraft struct {
	CustomerName string
	Notes        string
	Items        []ItemDraft
}

// NewReceiptDraft returns a cleared draft seeded with exactly one empty row.
func NewReceiptDraft() *ReceiptDraft {
	return &ReceiptDraft{Items: []ItemDraft{{}}}
}

// AddRow appends an empty item row.
func (d *ReceiptDraft) AddRow() {
	d.Items = append(d.Items, ItemDraft{})
}

// RemoveRow deletes the row at index i. The draft always keeps at least one
// editable row; removing the last row clears it instead.
func (d *ReceiptDraft) RemoveRow(i int) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	if len(d.Items) == 1 {
		d.Items[0] = ItemDraft{}
		return
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
}

// Reset clears the draft back to one empty row.
func (d *ReceiptDraft) Reset() {
	d.CustomerName = ""
	d.Notes = ""
	d.Items = []ItemDraft{{}}
}

// TotalWeight sums the weight of every row. Blank or unparseable weights
// contribute 0, so trailing empty rows never disturb the running total.
func (d *ReceiptDraft) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(parseWeight(item.Weight))
	}
	return total
}

// PreviewLaborCost returns TotalWeight × rate. This figure is advisory
// only; the authoritative total is always recomputed server-side.
func (d *ReceiptDraft) PreviewLaborCost(ratePerKg decimal.Decimal) decimal.Decimal {
	return d.TotalWeight().Mul(ratePerKg)
}

// ValidItems filters the draft down to rows with a non-empty name and a
// positive weight. Incomplete rows are the user's scratch space and are
// silently dropped rather than rejected.
func (d *ReceiptDraft) ValidItems() []LineItem {
	var items []LineItem
	for _, row := range d.Items {
		name := strings.TrimSpace(row.Name)
		weight := parseWeight(row.Weight)
		if name == "" || !weight.IsPositive() {
			continue
		}
		items = append(items, LineItem{
			Name:      name,
			WeightKg:  weight,
			Dimension: strings.TrimSpace(row.Dimension),
		})
	}
	return items
}

// Validate reports whether the draft is submittable. It returns ErrNoItems
// when no row qualifies; callers must not issue a network call in that case.
func (d *ReceiptDraft) Validate() error {
	if len(d.ValidItems()) == 0 {
		return ErrNoItems
	}
	return nil
}

func parseWeight(s string) decimal.Decimal {
	w, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || w.IsNegative() {
		return decimal.Zero
	}
	return w
}
