package formatter

import (
	"testing"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestMoneyAndWeight(t *testing.T) {
	assert.Equal(t, "₹750.00", Money(750))
	assert.Equal(t, "₹749.99", Money(749.99))
	assert.Equal(t, "15.00 kg", Weight(15))
}

func TestItemsSummary(t *testing.T) {
	items := []api.ReceiptItem{
		{ItemName: "Angle", WeightKg: 10, Dimension: "8x8 feet"},
		{ItemName: "Rod", WeightKg: 5.5},
	}
	assert.Equal(t, "Angle (10kg) - 8x8 feet, Rod (5.5kg)", ItemsSummary(items))
	assert.Equal(t, "", ItemsSummary(nil))
}

func TestCustomerOrDash(t *testing.T) {
	assert.Equal(t, "-", CustomerOrDash(""))
	assert.Equal(t, "Sharma", CustomerOrDash("Sharma"))
}

func TestFormatReceiptTicket(t *testing.T) {
	r := &api.Receipt{
		ID:             12,
		Date:           "2025-06-01",
		Time:           "10:30:00",
		CustomerName:   "Sharma",
		Notes:          "deliver monday",
		TotalWeight:    15,
		TotalLaborCost: 750,
		Items: []api.ReceiptItem{
			{ItemName: "Angle", WeightKg: 10, Dimension: "8x8 feet", LaborCost: 500},
			{ItemName: "Rod", WeightKg: 5, LaborCost: 250},
		},
	}

	ticket := FormatReceiptTicket(r)
	assert.Contains(t, ticket, "Nav Durga Steel")
	assert.Contains(t, ticket, "Receipt #12")
	assert.Contains(t, ticket, "Sharma")
	assert.Contains(t, ticket, "₹750.00")
	assert.Contains(t, ticket, "deliver monday")
}

func TestRenderTable_PadsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "Long Header"}, [][]string{{"row value", "x"}})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "Long Header")
	assert.Contains(t, out, "row value")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
