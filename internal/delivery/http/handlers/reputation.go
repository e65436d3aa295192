package handlers

import (
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/deal/response"
)

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.badRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	members, err := h.ledger.Leaderboard(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.NewLeaderboardResponse(members))
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.int64Param(w, r, "contributorID")
	if !ok {
		return
	}
	member, err := h.ledger.Member(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, response.MemberResponse{
		ContributorID: member.ContributorID,
		DisplayName:   member.DisplayName,
		Points:        member.Points,
	})
}
