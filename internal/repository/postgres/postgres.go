package postgres

import (
	"database/sql"

	"unihub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CommunityRepository
	repository.MembershipRepository
	repository.JoinRequestRepository
	repository.PinRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		UserRepository:        NewUserRepository(db),
		CommunityRepository:   NewCommunityRepository(db),
		MembershipRepository:  NewMembershipRepository(db),
		JoinRequestRepository: NewJoinRequestRepository(db),
		PinRepository:         NewPinRepository(db),
		EventRepository:       NewEventRepository(db),
	}
}
