package http

import (
	"context"
	"encoding/json"
	"net/http"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/service"
)

type MembershipHandler struct {
	membershipSvc service.MembershipService
}

func NewMembershipHandler(membershipSvc service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipSvc: membershipSvc}
}

func (h *MembershipHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.membershipSvc.Join)
}

func (h *MembershipHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.membershipSvc.Leave)
}

func (h *MembershipHandler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.membershipSvc.RequestJoin)
}

func (h *MembershipHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.membershipSvc.CancelRequest)
}

// transition handles the self-service operations that share a shape:
// the actor acts on their own relationship to the community.
func (h *MembershipHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, communityID, userID int64) error) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	if err := op(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MembershipHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.membershipSvc.Approve)
}

func (h *MembershipHandler) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.membershipSvc.Deny)
}

func (h *MembershipHandler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, communityID, requesterID, actorID int64) error) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	requesterID, err := pathID(r, "userID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	if err := op(r.Context(), id, requesterID, actor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type setRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (h *MembershipHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.membershipSvc.SetRole(r.Context(), id, actor, targetID, req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MembershipHandler) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	rel, err := h.membershipSvc.StatusOf(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (h *MembershipHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	members, err := h.membershipSvc.ListMembers(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MembershipHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	requests, err := h.membershipSvc.ListRequests(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
