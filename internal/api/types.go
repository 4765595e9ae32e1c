package api

import "net/url"

// loginRequest is the JSON body sent to POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult holds the successful response of POST /login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// updatePasswordRequest is the JSON body sent to POST /update-password.
// Matching-confirmation and current-password checks are backend
// responsibilities; the client only relays the outcome.
type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LaborRate is the process-wide per-kilogram labor cost multiplier.
type LaborRate struct {
	RatePerKg float64 `json:"rate_per_kg"`
}

// ReceiptItem is one weighed unit within a stored receipt. LaborCost is
// computed server-side at creation time.
type ReceiptItem struct {
	ID        int     `json:"id"`
	ItemName  string  `json:"item_name"`
	WeightKg  float64 `json:"weight_kg"`
	Dimension string  `json:"dimension"`
	LaborCost float64 `json:"labor_cost"`
}

// Receipt is a finalized customer transaction as stored by the backend.
// The client never recomputes TotalWeight or TotalLaborCost; server values
// are authoritative.
type Receipt struct {
	ID             int           `json:"id"`
	CustomerName   string        `json:"customer_name"`
	Notes          string        `json:"notes"`
	Date           string        `json:"date"` // YYYY-MM-DD
	Time           string        `json:"time"` // HH:MM:SS
	TotalWeight    float64       `json:"total_weight"`
	TotalLaborCost float64       `json:"total_labor_cost"`
	CreatedAt      string        `json:"created_at"`
	Items          []ReceiptItem `json:"items"`
}

// NewReceiptItem is one line of a receipt submission.
type NewReceiptItem struct {
	ItemName  string  `json:"item_name"`
	WeightKg  float64 `json:"weight_kg"`
	Dimension string  `json:"dimension,omitempty"`
}

// NewReceipt is the JSON body sent to POST /receipts. The backend stamps the
// current date and time and computes all labor costs.
type NewReceipt struct {
	CustomerName string           `json:"customer_name,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Items        []NewReceiptItem `json:"items"`
}

// CreateReceiptResult holds the 201 response of POST /receipts.
type CreateReceiptResult struct {
	Message   string `json:"message"`
	ReceiptID int    `json:"receipt_id"`
}

// DailySummary is the server-computed aggregate for one date.
type DailySummary struct {
	Date           string  `json:"date"`
	TotalReceipts  int     `json:"total_receipts"`
	TotalWeight    float64 `json:"total_weight"`
	TotalLaborCost float64 `json:"total_labor_cost"`
}

// DayTotals is one entry of a monthly daily breakdown.
type DayTotals struct {
	Receipts  int     `json:"receipts"`
	Weight    float64 `json:"weight"`
	LaborCost float64 `json:"labor_cost"`
}

// MonthlySummary is the server-computed aggregate for one month, with a
// per-date breakdown keyed by ISO date string.
type MonthlySummary struct {
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	TotalReceipts  int                  `json:"total_receipts"`
	TotalWeight    float64              `json:"total_weight"`
	TotalLaborCost float64              `json:"total_labor_cost"`
	DailyBreakdown map[string]DayTotals `json:"daily_breakdown"`
}

// ExportResult holds the response of GET /export. Content is the final CSV
// text produced by the backend; the client writes it out unchanged.
type ExportResult struct {
	Filename     string `json:"filename"`
	Content      string `json:"content"`
	TotalRecords int    `json:"total_records"`
}

// HealthResult holds the response of GET /health.
type HealthResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// messageResponse covers endpoints that return only a confirmation message.
type messageResponse struct {
	Message string `json:"message"`
}

// Sort field and order values understood by GET /receipts and GET /export.
const (
	SortByDate      = "date"
	SortByLaborCost = "labor_cost"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ReceiptQuery holds the filter and sort parameters shared by GET /receipts
// and GET /export. Filtering and sorting semantics are owned by the backend;
// the query is passed through verbatim.
type ReceiptQuery struct {
	Date      string // single day, YYYY-MM-DD; ignored when a range is set
	StartDate string // inclusive range start; requires EndDate
	EndDate   string // inclusive range end; requires StartDate
	Customer  string // substring match
	SortBy    string // SortByDate (default) or SortByLaborCost
	SortOrder string // SortAsc or SortDesc (default)
}

// DayQuery returns a query for all receipts on a single date.
func DayQuery(date string) ReceiptQuery {
	return ReceiptQuery{Date: date}
}

// Values encodes the query as URL parameters. Empty date, range, and
// customer filters are omitted; a date range is only sent when both bounds
// are present; sort_by and sort_order are always included.
func (q ReceiptQuery) Values() url.Values {
	v := url.Values{}
	if q.StartDate != "" && q.EndDate != "" {
		v.Set("start_date", q.StartDate)
		v.Set("end_date", q.EndDate)
	} else if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.Customer != "" {
		v.Set("customer", q.Customer)
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = SortDesc
	}
	v.Set("sort_by", sortBy)
	v.Set("sort_order", sortOrder)
	return v
}
