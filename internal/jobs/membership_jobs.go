package jobs

import (
	"context"
	"time"

	"unihub-backend/internal/logger"
)

// SendPendingRequestReminders emails every community owner who has join
// requests sitting unreviewed past the configured age. It only reads
// the ledger; requests are never expired by machinery.
func (jr *JobRunner) SendPendingRequestReminders() {
	jr.runWithRecovery("send_pending_request_reminders", jr.sendPendingRequestReminders)
}

func (jr *JobRunner) sendPendingRequestReminders() {
	ctx := context.Background()

	ageHours := jr.config.Scheduler.ReminderAgeHours
	if ageHours <= 0 {
		ageHours = 48
	}
	cutoff := time.Now().UTC().Add(-time.Duration(ageHours) * time.Hour)

	stale, err := jr.store.JoinRequestRepository.ListStale(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to list stale join requests", "error", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	pendingByCommunity := make(map[int64]int)
	for _, req := range stale {
		pendingByCommunity[req.CommunityID]++
	}

	for communityID, pending := range pendingByCommunity {
		community, err := jr.store.CommunityRepository.GetByID(ctx, communityID)
		if err != nil {
			logger.Error("Failed to load community for reminder", "community_id", communityID, "error", err)
			continue
		}
		owner, err := jr.store.UserRepository.GetByID(ctx, community.OwnerID)
		if err != nil {
			logger.Error("Failed to load owner for reminder", "user_id", community.OwnerID, "error", err)
			continue
		}
		if err := jr.emailSvc.SendPendingRequestReminder(ctx, owner.Email, owner.DisplayName, community.Name, pending); err != nil {
			logger.Error("Failed to send reminder", "community_id", communityID, "error", err)
			continue
		}
		logger.Info("Sent pending request reminder", "community_id", communityID, "pending", pending)
	}
}
