package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Community  *CommunityHandler
	Membership *MembershipHandler
	Pin        *PinHandler
	Event      *EventHandler
}

// NewRouter wires the full RPC surface. Public reads (community get,
// member list, pin list) skip the auth middleware; everything that
// names an actor requires a valid access token.
func NewRouter(h *Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Unauthenticated surface.
	public := api.NewRoute().Subrouter()
	public.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	public.HandleFunc("/communities", h.Community.List).Methods(http.MethodGet)
	public.HandleFunc("/communities/{id:[0-9]+}", h.Community.Get).Methods(http.MethodGet)
	public.HandleFunc("/communities/{id:[0-9]+}/members", h.Membership.ListMembers).Methods(http.MethodGet)
	public.HandleFunc("/communities/{id:[0-9]+}/pins", h.Pin.List).Methods(http.MethodGet)

	// Reads gated by the evaluator rather than by authentication: an
	// anonymous caller is an outsider, which view_content allows on
	// public communities.
	optional := api.NewRoute().Subrouter()
	optional.Use(auth.OptionalHandler)
	optional.HandleFunc("/communities/{id:[0-9]+}/events", h.Event.List).Methods(http.MethodGet)

	// Authenticated surface.
	private := api.NewRoute().Subrouter()
	private.Use(auth.Handler)
	private.HandleFunc("/communities", h.Community.Create).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}", h.Community.Update).Methods(http.MethodPatch)
	private.HandleFunc("/communities/{id:[0-9]+}/transfer", h.Community.Transfer).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/can", h.Community.Can).Methods(http.MethodGet)

	private.HandleFunc("/communities/{id:[0-9]+}/join", h.Membership.Join).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/leave", h.Membership.Leave).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/requests", h.Membership.RequestJoin).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/requests", h.Membership.CancelRequest).Methods(http.MethodDelete)
	private.HandleFunc("/communities/{id:[0-9]+}/requests", h.Membership.ListRequests).Methods(http.MethodGet)
	private.HandleFunc("/communities/{id:[0-9]+}/requests/{userID:[0-9]+}/approve", h.Membership.Approve).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/requests/{userID:[0-9]+}/deny", h.Membership.Deny).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/members/{userID:[0-9]+}/role", h.Membership.SetRole).Methods(http.MethodPut)
	private.HandleFunc("/communities/{id:[0-9]+}/status", h.Membership.Status).Methods(http.MethodGet)

	private.HandleFunc("/communities/{id:[0-9]+}/pins", h.Pin.Pin).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/pins", h.Pin.Reorder).Methods(http.MethodPut)
	private.HandleFunc("/communities/{id:[0-9]+}/pins/{postID:[0-9]+}", h.Pin.Unpin).Methods(http.MethodDelete)

	private.HandleFunc("/communities/{id:[0-9]+}/events", h.Event.Create).Methods(http.MethodPost)
	private.HandleFunc("/communities/{id:[0-9]+}/events/{eventID:[0-9]+}", h.Event.Update).Methods(http.MethodPut)
	private.HandleFunc("/communities/{id:[0-9]+}/events/{eventID:[0-9]+}", h.Event.Delete).Methods(http.MethodDelete)

	return r
}
