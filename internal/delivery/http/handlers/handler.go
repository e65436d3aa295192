package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealusecase "github.com/LavaJover/shvark-deal-service/internal/usecase/deal"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Announcer interface {
	RunNow(ctx context.Context) (*domain.Deal, error)
	ForceAnnounce(ctx context.Context, dealID int64) (*domain.Deal, error)
	ForceUnannounce(ctx context.Context, dealID int64) (*domain.Deal, error)
}

type Leaderboard interface {
	Leaderboard(ctx context.Context, limit int) ([]*domain.Member, error)
	Member(ctx context.Context, contributorID int64) (*domain.Member, error)
}

type Handler struct {
	deals     dealusecase.DealUsecase
	announcer Announcer
	ledger    Leaderboard
	notifier  domain.Notifier
	log       zerolog.Logger
}

func NewHandler(
	deals dealusecase.DealUsecase,
	announcer Announcer,
	ledger Leaderboard,
	notifier domain.Notifier,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		deals:     deals,
		announcer: announcer,
		ledger:    ledger,
		notifier:  notifier,
		log:       log.With().Str("component", "http").Logger(),
	}
}

func (h *Handler) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.json(w, http.StatusBadRequest, response.ErrorResponse{Error: "bad_request", Message: message})
}

// fail maps a usecase error onto a status code by its kind.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	body := response.ErrorResponse{Error: string(kind), Message: err.Error()}

	var code int
	switch kind {
	case domain.KindValidation:
		code = http.StatusUnprocessableEntity
	case domain.KindNotFound:
		code = http.StatusNotFound
	case domain.KindConflict:
		code = http.StatusConflict
	case domain.KindTransient:
		code = http.StatusBadGateway
	case domain.KindPartial:
		code = http.StatusInternalServerError
		body.ReconciliationRequired = true
		var partial *domain.PartialFailureError
		if errors.As(err, &partial) {
			body.TxHash = partial.TxHash
		}
	default:
		code = http.StatusInternalServerError
		body.Message = "internal error"
	}

	if code >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", r.URL.Path).Str("kind", string(kind)).Msg("request failed")
	}
	h.json(w, code, body)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.badRequest(w, "invalid payload")
		return false
	}
	return true
}

func (h *Handler) dealID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return h.int64Param(w, r, "id")
}

func (h *Handler) int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
