package domain

import "time"

// JoinRequest is a pending request to join a private community, keyed
// by (community_id, user_id). A user never holds a JoinRequest and a
// Membership for the same community at once; approval deletes the
// request and inserts the membership in the same transaction.
type JoinRequest struct {
	CommunityID int64     `json:"community_id"`
	UserID      int64     `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}
