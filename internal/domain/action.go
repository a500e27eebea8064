package domain

// Action is the closed catalogue of community-scoped operations the
// evaluator can be asked about. Every mutating service consults the
// evaluator with one of these before touching the store.
type Action string

const (
	ActionViewContent       Action = "view_content"
	ActionCreatePost        Action = "create_post"
	ActionComment           Action = "comment"
	ActionLike              Action = "like"
	ActionPostAnnouncement  Action = "post_announcement"
	ActionCreateEvent       Action = "create_event"
	ActionEditEvent         Action = "edit_event"
	ActionDeleteEvent       Action = "delete_event"
	ActionPinPost           Action = "pin_post"
	ActionUnpinPost         Action = "unpin_post"
	ActionReorderPins       Action = "reorder_pins"
	ActionApproveRequest    Action = "approve_request"
	ActionDenyRequest       Action = "deny_request"
	ActionEditCommunity     Action = "edit_community"
	ActionTransferOwnership Action = "transfer_ownership"
)

func (a Action) Valid() bool {
	switch a {
	case ActionViewContent, ActionCreatePost, ActionComment, ActionLike,
		ActionPostAnnouncement, ActionCreateEvent, ActionEditEvent,
		ActionDeleteEvent, ActionPinPost, ActionUnpinPost,
		ActionReorderPins, ActionApproveRequest, ActionDenyRequest,
		ActionEditCommunity, ActionTransferOwnership:
		return true
	}
	return false
}
