// Package audit records authorization denials as structured events.
// Every denial the evaluator hands back is reportable; today the sink
// is the structured log, keyed by a unique event id.
package audit

import (
	"context"
	"log/slog"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/logger"

	"github.com/google/uuid"
)

type Recorder struct {
	log *slog.Logger
}

func NewRecorder() *Recorder {
	return &Recorder{log: logger.Get().With("component", "audit")}
}

// Denied records a failed authorization attempt.
func (r *Recorder) Denied(ctx context.Context, actorID, communityID int64, action domain.Action) {
	r.log.WarnContext(ctx, "authorization denied",
		"event_id", uuid.NewString(),
		"actor_id", actorID,
		"community_id", communityID,
		"action", string(action),
	)
}
