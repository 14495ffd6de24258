package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/greenprocure/internal/recommend"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	a := &app{v: viper.New()}
	cmd := &cobra.Command{}
	cmd.SetErr(io.Discard)
	require.NoError(t, a.setup(cmd, "", false))
	return a
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Recommendations(t *testing.T) {
	h := newTestApp(t).handler()

	rec := post(t, h, "/v1/recommendations",
		`{"requirements": {"category": "Office Supplies", "quantity": 5000}, "history": [{"supplierId": "2"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res recommend.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Recommendations, 3)
	assert.Equal(t, "1", res.Recommendations[0].Supplier.ID)
	assert.True(t, res.Recommendations[1].PreviouslyAwarded)
}

func TestHandler_Allocations(t *testing.T) {
	h := newTestApp(t).handler()

	rec := post(t, h, "/v1/allocations", `{"requirements": {"category": "Office Supplies", "quantity": 1000}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var plan recommend.AllocationPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	require.Len(t, plan.Allocations, 3)
	assert.Equal(t, 1000.0, plan.TotalAllocated)
}

func TestHandler_Advice(t *testing.T) {
	h := newTestApp(t).handler()

	rec := post(t, h, "/v1/advice", `{"supplierIds": ["4", "7", "8"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var advice []recommend.ProcurementRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &advice))
	require.NotEmpty(t, advice)
	assert.Equal(t, recommend.AdviceDiversification, advice[0].Type)

	rec = post(t, h, "/v1/advice", `{"supplierIds": ["1", "99"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "99")
}

func TestHandler_Errors(t *testing.T) {
	h := newTestApp(t).handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed body", http.MethodPost, "/v1/recommendations", `{"requirements":`, http.StatusBadRequest},
		{"invalid region", http.MethodPost, "/v1/recommendations", `{"requirements": {"geographicPreference": "Atlantis"}}`, http.StatusBadRequest},
		{"negative priority", http.MethodPost, "/v1/allocations", `{"requirements": {"sustainabilityPriorities": {"recycling": -1}}}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/v1/recommendations", "", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_HealthAndMetrics(t *testing.T) {
	h := newTestApp(t).handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	post(t, h, "/v1/recommendations", `{"requirements": {"category": "Office Supplies"}}`)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "greenprocure_recommendation_runs_total 1")
}

func TestServe_StopsOnCancel(t *testing.T) {
	a := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	a := newTestApp(t)
	err := a.serve(context.Background(), "256.0.0.1:bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}
