package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/request"
	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	dealdto "github.com/LavaJover/shvark-deal-service/internal/usecase/dto/deal"
)

func (h *Handler) SubmitDeal(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitDealRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.RequesterID <= 0 {
		h.badRequest(w, "requester_id is required")
		return
	}

	deal, err := h.deals.SubmitDeal(r.Context(), &dealdto.SubmitDealInput{
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		Address:       req.Address,
		Amount:        req.Amount,
		Summary:       req.Summary,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusCreated, response.NewDealResponse(deal))
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group != "" && group != "status" {
		h.badRequest(w, "group must be status")
		return
	}

	input := &dealdto.ListDealsInput{}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.DealStatus(s)
		input.Status = &status
	}

	deals, err := h.deals.ListDeals(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if group == "status" {
		h.json(w, http.StatusOK, response.NewDealsByStatusResponse(dealdto.GroupByStatus(deals)))
		return
	}
	h.json(w, http.StatusOK, response.NewDealsResponse(deals))
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	deal, err := h.deals.GetDeal(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewDealResponse(deal))
}

func (h *Handler) TreasuryBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.deals.GetTreasuryBalance(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.TreasuryResponse{Balance: balance})
}
