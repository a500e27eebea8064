package domain

import "time"

type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleModerator    Role = "MODERATOR"
	RoleEventManager Role = "EVENT_MANAGER"
	RoleMember       Role = "MEMBER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleModerator, RoleEventManager, RoleMember:
		return true
	}
	return false
}

// Membership is the accepted relationship between a user and a
// community, keyed by (community_id, user_id). It exists only while the
// user is a member; pending requests live in JoinRequest instead.
type Membership struct {
	CommunityID int64     `json:"community_id"`
	UserID      int64     `json:"user_id"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// RelationshipStatus is derived from the presence of a Membership or a
// JoinRequest, never stored, so the two tables cannot diverge from it.
type RelationshipStatus string

const (
	StatusOutsider  RelationshipStatus = "OUTSIDER"
	StatusRequested RelationshipStatus = "REQUESTED"
	StatusMember    RelationshipStatus = "MEMBER"
)

// Relationship is the answer to "what is this user to this community":
// the derived status plus the role when the status is MEMBER.
type Relationship struct {
	Status RelationshipStatus `json:"status"`
	Role   Role               `json:"role,omitempty"`
}

func (r Relationship) IsMember() bool {
	return r.Status == StatusMember
}
