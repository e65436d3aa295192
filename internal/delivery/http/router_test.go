package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/LavaJover/shvark-deal-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/announcement"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/confirmation"
	dealusecase "github.com/LavaJover/shvark-deal-service/internal/usecase/deal"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/fakes"
	"github.com/LavaJover/shvark-deal-service/internal/usecase/reputation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validAddress = "0x52908400098527886E0F7030069857D2E4169EE7"
	adminToken   = "s3cret"
)

type testServer struct {
	deals    *fakes.DealRepository
	payments *fakes.PaymentExecutor
	notifier *fakes.Notifier
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewDealMetrics(reg)
	s := &testServer{
		deals:    fakes.NewDealRepository(),
		payments: fakes.NewPaymentExecutor("10"),
		notifier: fakes.NewNotifier(),
	}
	events := fakes.NewEventPublisher()
	store, err := confirmation.NewStore(100, time.Minute)
	require.NoError(t, err)
	ledger := reputation.NewLedger(fakes.NewMemberRepository(), m, zerolog.Nop())
	uc := dealusecase.NewDefaultDealUsecase(
		s.deals, s.payments, s.notifier, events, store, ledger,
		dealusecase.Points{Approve: 50, Reject: 10}, time.Minute, m, zerolog.Nop(),
	)
	scheduler := announcement.NewScheduler(s.deals, s.notifier, events, m, zerolog.Nop(), time.Hour)

	h := handlers.NewHandler(uc, scheduler, ledger, s.notifier, zerolog.Nop())
	s.handler = NewRouter(h, RouterConfig{AdminToken: adminToken, Gatherer: reg, Log: zerolog.Nop()})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) submit(t *testing.T) response.DealResponse {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/v1/deals", map[string]any{
		"requester_id":   100,
		"requester_name": "founder",
		"address":        validAddress,
		"amount":         "1.5",
		"summary":        "Project Name: Rocket\nWe build rockets.",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var deal response.DealResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deal))
	return deal
}

func (s *testServer) decide(t *testing.T, path string, userID int64, action string) *httptest.ResponseRecorder {
	t.Helper()
	rr := s.do(t, http.MethodPost, path+"/proposals", map[string]any{"user_id": userID, "user_name": "alice", "action": action})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return s.do(t, http.MethodPost, path+"/confirm", map[string]any{"user_id": userID})
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestSubmitAndGetDeal(t *testing.T) {
	s := newTestServer(t)
	deal := s.submit(t)
	assert.Equal(t, "pending", deal.Status)
	assert.Equal(t, "Rocket", deal.ProjectName)

	rr := s.do(t, http.MethodGet, "/api/v1/deals/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/deals/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found", decodeError(t, rr).Error)

	rr = s.do(t, http.MethodGet, "/api/v1/deals/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodPost, "/api/v1/deals", map[string]any{
		"requester_id": 100, "address": "0xnope", "amount": "1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "validation", decodeError(t, rr).Error)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApproveFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)

	rr := s.decide(t, "/api/v1/deals/1", 7, "approve")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var outcome response.OutcomeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.Equal(t, "approved", outcome.Deal.Status)
	assert.NotEmpty(t, outcome.TxHash)

	rr = s.do(t, http.MethodPost, "/api/v1/deals/1/confirm", map[string]any{"user_id": 7})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/deals/1/proposals", map[string]any{"user_id": 8, "action": "reject"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var board response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Members, 1)
	assert.Equal(t, int64(50), board.Members[0].Points)
	assert.Equal(t, 1, board.Members[0].Rank)

	rr = s.do(t, http.MethodGet, "/api/v1/members/7", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodGet, "/api/v1/members/8", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPayoutFailuresMapToStatusCodes(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)

	s.payments.BeforeSend = func() error { return errors.New("rpc down") }
	rr := s.decide(t, "/api/v1/deals/1", 7, "approve")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "transient", decodeError(t, rr).Error)

	s.payments.BeforeSend = nil
	s.deals.FailOn("CompletePayout", errors.New("connection reset"))
	rr = s.decide(t, "/api/v1/deals/1", 7, "approve")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, "partial", body.Error)
	assert.True(t, body.ReconciliationRequired)
	assert.NotEmpty(t, body.TxHash)
}

func TestCancelDecisionOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)

	rr := s.do(t, http.MethodPost, "/api/v1/deals/1/proposals", map[string]any{"user_id": 7, "action": "reject"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/deals/1/cancel", map[string]any{"user_id": 7})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/deals/1/cancel", map[string]any{"user_id": 7})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)

	rr := s.do(t, http.MethodPost, "/api/v1/admin/announcements/run", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/announcements/run", nil, "X-Admin-Token", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var announced response.AnnounceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &announced))
	require.NotNil(t, announced.Deal)
	assert.True(t, announced.Deal.Announced)
	assert.Len(t, s.notifier.SentTo(domain.ReviewGroup()), 1)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/deals/1/announce", nil, "X-Admin-Token", adminToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/deals/1/unannounce", nil, "X-Admin-Token", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/deals/1/announce", nil, "X-Admin-Token", adminToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/notify-test", nil, "X-Admin-Token", adminToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAdminResetToPending(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)
	rr := s.decide(t, "/api/v1/deals/1", 7, "reject")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/v1/admin/deals/1/reset", map[string]any{"user_id": 1}, "X-Admin-Token", adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var deal response.DealResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deal))
	assert.Equal(t, "pending", deal.Status)
	assert.True(t, deal.Announced)
}

func TestListDealsAndBalance(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)
	s.submit(t)

	rr := s.do(t, http.MethodGet, "/api/v1/deals?status=pending", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list response.DealsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Deals, 2)

	rr = s.decide(t, "/api/v1/deals/1", 7, "reject")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/deals?group=status", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var grouped response.DealsByStatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &grouped))
	require.Len(t, grouped.Pending, 1)
	assert.Equal(t, int64(2), grouped.Pending[0].ID)
	require.Len(t, grouped.Rejected, 1)
	assert.Equal(t, int64(1), grouped.Rejected[0].ID)
	assert.Empty(t, grouped.Approved)

	rr = s.do(t, http.MethodGet, "/api/v1/deals?group=requester", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/deals?status=archived", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/v1/balance", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var balance response.TreasuryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &balance))
	assert.Equal(t, "10", balance.Balance.String())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.submit(t)
	s.decide(t, "/api/v1/deals/1", 7, "reject")

	rr := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "deal_decisions_total")
}
