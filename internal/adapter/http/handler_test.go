package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"charity-ledger/internal/adapter/memory"
	"charity-ledger/internal/adapter/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := usecase.NewLedgerService(
		memory.NewCampaignRepository(),
		memory.NewTreasury(),
		memory.NewBus(),
		logger,
		10,
	)
	srv := httptest.NewServer(NewHandler(svc, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, caller, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if caller != "" {
		req.Header.Set(headerCaller, caller)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func createCampaign(t *testing.T, srv *httptest.Server, owner string) campaignResponse {
	t.Helper()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns", owner,
		`{"title":"Save the Ocean","description":"Clean ocean campaign","target_amount":1000,"duration_seconds":604800}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var c campaignResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	return c
}

func TestCreateCampaignEndpoint(t *testing.T) {
	srv := newTestServer(t)

	c := createCampaign(t, srv, "owner-1")
	require.EqualValues(t, 1, c.ID)
	require.Equal(t, "owner-1", c.Owner)
	require.EqualValues(t, 1000, c.TargetAmount)
	require.False(t, c.IsCompleted)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), c.Deadline, time.Minute)

	// identity header is mandatory on mutations
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns", "", `{"target_amount":1000,"duration_seconds":60}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// validation failures map to 400
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns", "owner-1", `{"target_amount":0,"duration_seconds":60}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDonationEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createCampaign(t, srv, "owner-1")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/donations", "donor-a", `{"amount":250}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/donations", "donor-a", `{"amount":1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/42/donations", "donor-a", `{"amount":250}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c campaignResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	require.EqualValues(t, 250, c.RaisedAmount)
	require.EqualValues(t, 1, c.NumberOfDonors)
}

func TestWithdrawalEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createCampaign(t, srv, "owner-1")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/donations", "donor-a", `{"amount":500}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// non-owner rejected regardless of deadline state
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/withdrawals", "someone-else", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// owner blocked while the campaign is active
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/withdrawals", "owner-1", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestQueryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	createCampaign(t, srv, "owner-1")
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/campaigns/1/donations", "donor-a", `{"amount":250}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/1/remaining", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var remaining map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&remaining))
	require.EqualValues(t, 750, remaining["remaining_amount"])

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/1/progress", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var progress map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&progress))
	require.EqualValues(t, 25, progress["progress_percent"])

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/count", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var count map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&count))
	require.EqualValues(t, 1, count["count"])

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []campaignResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/42", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/campaigns/abc", "", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
