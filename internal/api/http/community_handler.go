package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/service"

	"github.com/gorilla/mux"
)

type CommunityHandler struct {
	communitySvc service.CommunityService
	authzSvc     service.AuthzService
}

func NewCommunityHandler(communitySvc service.CommunityService, authzSvc service.AuthzService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc, authzSvc: authzSvc}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

type createCommunityRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rules       string         `json:"rules"`
	Privacy     domain.Privacy `json:"privacy"`
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}

	var req createCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	community, err := h.communitySvc.CreateCommunity(r.Context(), actor, req.Name, req.Description, req.Rules, req.Privacy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, community)
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	community, err := h.communitySvc.GetCommunity(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	communities, err := h.communitySvc.ListCommunities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, communities)
}

func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	var upd domain.CommunityUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	community, err := h.communitySvc.UpdateCommunity(r.Context(), id, actor, &upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

type transferRequest struct {
	NewOwnerID int64 `json:"new_owner_id"`
}

func (h *CommunityHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.communitySvc.TransferOwnership(r.Context(), id, actor, req.NewOwnerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type canResponse struct {
	Allowed bool `json:"allowed"`
}

// Can exposes the evaluator as a probe so clients render only the
// controls the actor may use, instead of guessing from roles.
func (h *CommunityHandler) Can(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}

	action := domain.Action(r.URL.Query().Get("action"))
	allowed, err := h.authzSvc.Can(r.Context(), actor, id, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, canResponse{Allowed: allowed})
}
