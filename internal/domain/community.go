package domain

import "time"

type Privacy string

const (
	PrivacyPublic  Privacy = "PUBLIC"
	PrivacyPrivate Privacy = "PRIVATE"
)

func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

// Community has exactly one owner at all times. OwnerID and the single
// Owner-role membership are kept in lockstep by the registry; ownership
// transfer swaps both inside one transaction.
type Community struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Privacy     Privacy   `json:"privacy"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rules       string    `json:"rules"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommunityUpdate carries partial-update fields for the registry. Nil
// means "leave unchanged".
type CommunityUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Rules       *string  `json:"rules,omitempty"`
	Privacy     *Privacy `json:"privacy,omitempty"`
}
