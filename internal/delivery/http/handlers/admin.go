package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/request"
	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

func (h *Handler) RunAnnouncementCheck(w http.ResponseWriter, r *http.Request) {
	deal, err := h.announcer.RunNow(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := response.AnnounceResponse{}
	if deal != nil {
		d := response.NewDealResponse(deal)
		out.Deal = &d
	}
	h.json(w, http.StatusOK, out)
}

func (h *Handler) ForceAnnounce(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	deal, err := h.announcer.ForceAnnounce(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewDealResponse(deal))
}

func (h *Handler) ForceUnannounce(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	deal, err := h.announcer.ForceUnannounce(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewDealResponse(deal))
}

func (h *Handler) ResetToPending(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dealID(w, r)
	if !ok {
		return
	}
	var req request.ActorRequest
	if !h.decode(w, r, &req) {
		return
	}
	deal, err := h.deals.ResetToPending(r.Context(), id, req.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewDealResponse(deal))
}

// TestReviewGroup posts a probe message to check the bot can reach the group.
func (h *Handler) TestReviewGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.Publish(r.Context(), domain.ReviewGroup(), "🔔 Test message from the deal service."); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
