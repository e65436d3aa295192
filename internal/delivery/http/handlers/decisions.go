package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/request"
	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
)

func (h *Handler) ProposeDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	var req request.ProposeDecisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID <= 0 {
		h.badRequest(w, "user_id is required")
		return
	}

	proposal, err := h.deals.ProposeDecision(r.Context(), &dealdto.ProposeDecisionInput{
		DealID:   id,
		UserID:   req.UserID,
		UserName: req.UserName,
		Action:   domain.DecisionAction(req.Action),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusCreated, response.NewProposalResponse(proposal))
}

func (h *Handler) ConfirmDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	var req request.ActorRequest
	if !h.decode(w, r, &req) {
		return
	}

	outcome, err := h.deals.ConfirmDecision(r.Context(), &dealdto.ConfirmDecisionInput{DealID: id, UserID: req.UserID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewOutcomeResponse(outcome))
}

func (h *Handler) CancelDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	var req request.ActorRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.deals.CancelDecision(r.Context(), id, req.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
