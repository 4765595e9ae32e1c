package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, TimeoutMs: 2000}, NoopObserver{})
}

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)
		assert.Equal(t, "admin123", req.Password)

		json.NewEncoder(w).Encode(LoginResult{AccessToken: "tok-1", Username: "admin"})
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.AccessToken)
	assert.Equal(t, "admin", result.Username)
}

func TestClient_Login_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-7", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(LaborRate{RatePerKg: 10})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.SetToken("tok-7")

	rate, err := client.LaborRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10.0, rate.RatePerKg)
}

func TestClient_ExpiredTokenSurfacesUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token has expired"})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	client.SetToken("stale")

	_, err := client.Summary(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Labor rate not configured"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateReceipt(context.Background(), NewReceipt{
		Items: []NewReceiptItem{{ItemName: "Rod", WeightKg: 5}},
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Labor rate not configured", apiErr.Error())
}

func TestClient_APIErrorGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LaborRate(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 500", apiErr.Error())
}

func TestClient_Unavailable(t *testing.T) {
	client := testClient("http://127.0.0.1:1") // nothing listening
	_, err := client.Summary(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Receipts_QueryPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-01-01", q.Get("start_date"))
		assert.Equal(t, "2025-01-31", q.Get("end_date"))
		assert.Equal(t, "Sharma", q.Get("customer"))
		assert.Equal(t, SortByLaborCost, q.Get("sort_by"))
		assert.Equal(t, SortAsc, q.Get("sort_order"))
		json.NewEncoder(w).Encode([]Receipt{})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Receipts(context.Background(), ReceiptQuery{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
		Customer:  "Sharma",
		SortBy:    SortByLaborCost,
		SortOrder: SortAsc,
	})
	require.NoError(t, err)
}

func TestClient_DeleteReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/receipts/42", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "Receipt deleted successfully"})
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv.URL).DeleteReceipt(context.Background(), 42))
}

func TestClient_ExportAll_NoParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode(ExportResult{
			Filename:     "all_receipts.csv",
			Content:      "Date,Time\n",
			TotalRecords: 0,
		})
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).ExportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "all_receipts.csv", result.Filename)
}

func TestReceiptQuery_Values(t *testing.T) {
	tests := []struct {
		name string
		q    ReceiptQuery
		want map[string]string
		omit []string
	}{
		{
			name: "empty query always carries sort defaults",
			q:    ReceiptQuery{},
			want: map[string]string{"sort_by": "date", "sort_order": "desc"},
			omit: []string{"date", "start_date", "end_date", "customer"},
		},
		{
			name: "single bound is not a range",
			q:    ReceiptQuery{StartDate: "2025-01-01"},
			want: map[string]string{"sort_by": "date", "sort_order": "desc"},
			omit: []string{"start_date", "end_date"},
		},
		{
			name: "range takes priority over single date",
			q:    ReceiptQuery{Date: "2025-02-02", StartDate: "2025-01-01", EndDate: "2025-01-31"},
			want: map[string]string{"start_date": "2025-01-01", "end_date": "2025-01-31"},
			omit: []string{"date"},
		},
		{
			name: "day query",
			q:    DayQuery("2025-03-03"),
			want: map[string]string{"date": "2025-03-03", "sort_by": "date", "sort_order": "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := tt.q.Values()
			for k, v := range tt.want {
				assert.Equal(t, v, values.Get(k), k)
			}
			for _, k := range tt.omit {
				assert.False(t, values.Has(k), k)
			}
		})
	}
}
