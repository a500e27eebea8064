package domain

import "time"

// Event is the payload handed to the event store once the scoping
// service has cleared the actor. The access engine only gates event
// mutations; the store owns the rows.
type Event struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"community_id"`
	CreatorID   int64     `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}
