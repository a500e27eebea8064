package domain

import "time"

// PinnedPost promotes a post within a community's display list.
// Positions within a community are dense and zero-based: always exactly
// 0..n-1 with no duplicates. Unpinning closes the gap in the same
// transaction as the removal.
type PinnedPost struct {
	CommunityID int64     `json:"community_id"`
	PostID      int64     `json:"post_id"`
	Position    int       `json:"position"`
	PinnedAt    time.Time `json:"pinned_at"`
}
