package service_test

import (
	"context"
	"time"

	"unihub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCommunityRepo
type MockCommunityRepo struct {
	mock.Mock
}

func (m *MockCommunityRepo) CreateWithOwner(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCommunityRepo) GetByID(ctx context.Context, id int64) (*domain.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) Update(ctx context.Context, id int64, upd *domain.CommunityUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}
func (m *MockCommunityRepo) List(ctx context.Context) ([]domain.Community, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Community), args.Error(1)
}
func (m *MockCommunityRepo) TransferOwnership(ctx context.Context, communityID, oldOwnerID, newOwnerID int64) error {
	args := m.Called(ctx, communityID, oldOwnerID, newOwnerID)
	return args.Error(0)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMembershipRepo) Get(ctx context.Context, communityID, userID int64) (*domain.Membership, error) {
	args := m.Called(ctx, communityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) Delete(ctx context.Context, communityID, userID int64) error {
	args := m.Called(ctx, communityID, userID)
	return args.Error(0)
}
func (m *MockMembershipRepo) UpdateRole(ctx context.Context, communityID, userID int64, role domain.Role) error {
	args := m.Called(ctx, communityID, userID, role)
	return args.Error(0)
}
func (m *MockMembershipRepo) ListByCommunity(ctx context.Context, communityID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.Membership), args.Error(1)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) Get(ctx context.Context, communityID, userID int64) (*domain.JoinRequest, error) {
	args := m.Called(ctx, communityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Delete(ctx context.Context, communityID, userID int64) error {
	args := m.Called(ctx, communityID, userID)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListByCommunity(ctx context.Context, communityID int64) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Approve(ctx context.Context, communityID, userID int64, joinedAt time.Time) error {
	args := m.Called(ctx, communityID, userID, joinedAt)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListStale(ctx context.Context, olderThan time.Time) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPinRepo
type MockPinRepo struct {
	mock.Mock
}

func (m *MockPinRepo) Get(ctx context.Context, communityID, postID int64) (*domain.PinnedPost, error) {
	args := m.Called(ctx, communityID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PinnedPost), args.Error(1)
}
func (m *MockPinRepo) Append(ctx context.Context, communityID, postID int64, pinnedAt time.Time) (*domain.PinnedPost, error) {
	args := m.Called(ctx, communityID, postID, pinnedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PinnedPost), args.Error(1)
}
func (m *MockPinRepo) Remove(ctx context.Context, communityID, postID int64) error {
	args := m.Called(ctx, communityID, postID)
	return args.Error(0)
}
func (m *MockPinRepo) Reorder(ctx context.Context, communityID int64, orderedPostIDs []int64) error {
	args := m.Called(ctx, communityID, orderedPostIDs)
	return args.Error(0)
}
func (m *MockPinRepo) ListByCommunity(ctx context.Context, communityID int64) ([]domain.PinnedPost, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.PinnedPost), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, ev *domain.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, ev *domain.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) ListByCommunity(ctx context.Context, communityID int64) ([]domain.Event, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendJoinApproved(ctx context.Context, email, name, communityName string) error {
	args := m.Called(ctx, email, name, communityName)
	return args.Error(0)
}
func (m *MockEmailService) SendJoinDenied(ctx context.Context, email, name, communityName string) error {
	args := m.Called(ctx, email, name, communityName)
	return args.Error(0)
}
func (m *MockEmailService) SendOwnershipTransferred(ctx context.Context, email, name, communityName string) error {
	args := m.Called(ctx, email, name, communityName)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingRequestReminder(ctx context.Context, email, name, communityName string, pending int) error {
	args := m.Called(ctx, email, name, communityName, pending)
	return args.Error(0)
}

// MockAuthz
type MockAuthz struct {
	mock.Mock
}

func (m *MockAuthz) Can(ctx context.Context, actorID, communityID int64, action domain.Action) (bool, error) {
	args := m.Called(ctx, actorID, communityID, action)
	return args.Bool(0), args.Error(1)
}
func (m *MockAuthz) Require(ctx context.Context, actorID, communityID int64, action domain.Action) error {
	args := m.Called(ctx, actorID, communityID, action)
	return args.Error(0)
}
