package service_test

import (
	"context"
	"testing"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type membershipFixture struct {
	communityRepo  *MockCommunityRepo
	membershipRepo *MockMembershipRepo
	requestRepo    *MockJoinRequestRepo
	userRepo       *MockUserRepo
	authz          *MockAuthz
	emailSvc       *MockEmailService
	svc            service.MembershipService
}

func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{
		communityRepo:  new(MockCommunityRepo),
		membershipRepo: new(MockMembershipRepo),
		requestRepo:    new(MockJoinRequestRepo),
		userRepo:       new(MockUserRepo),
		authz:          new(MockAuthz),
		emailSvc:       new(MockEmailService),
	}
	f.svc = service.NewMembershipService(
		f.communityRepo,
		f.membershipRepo,
		f.requestRepo,
		f.userRepo,
		f.authz,
		f.emailSvc,
		service.NewCommunityLocker(),
	)
	return f
}

func publicCommunity(id, ownerID int64) *domain.Community {
	return &domain.Community{ID: id, OwnerID: ownerID, Privacy: domain.PrivacyPublic, Name: "Chess Club"}
}

func privateCommunity(id, ownerID int64) *domain.Community {
	return &domain.Community{ID: id, OwnerID: ownerID, Privacy: domain.PrivacyPrivate, Name: "Secret Society"}
}

func TestMembershipService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("Outsider Joins Public Community", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.membershipRepo.On("Create", ctx, mock.AnythingOfType("*domain.Membership")).Return(nil)

		err := f.svc.Join(ctx, 1, 7)
		assert.NoError(t, err)

		created := f.membershipRepo.Calls[len(f.membershipRepo.Calls)-1].Arguments.Get(1).(*domain.Membership)
		assert.Equal(t, domain.RoleMember, created.Role)
	})

	t.Run("Direct Join On Private Community Rejected", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)

		err := f.svc.Join(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Member Cannot Join Again", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.Membership{
			CommunityID: 1, UserID: 7, Role: domain.RoleMember,
		}, nil)

		err := f.svc.Join(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestMembershipService_RequestJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Outsider Requests Private Community", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Create", ctx, mock.AnythingOfType("*domain.JoinRequest")).Return(nil)

		err := f.svc.RequestJoin(ctx, 1, 7)
		assert.NoError(t, err)
	})

	t.Run("Request On Public Community Rejected", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)

		err := f.svc.RequestJoin(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Duplicate Request Is A Conflict", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.JoinRequest{
			CommunityID: 1, UserID: 7,
		}, nil)

		err := f.svc.RequestJoin(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Existing Member Cannot Request", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.Membership{
			CommunityID: 1, UserID: 7, Role: domain.RoleMember,
		}, nil)

		err := f.svc.RequestJoin(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestMembershipService_CancelRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Request Cancelled", func(t *testing.T) {
		f := newMembershipFixture()
		f.requestRepo.On("Delete", ctx, int64(1), int64(7)).Return(nil)

		err := f.svc.CancelRequest(ctx, 1, 7)
		assert.NoError(t, err)
	})

	t.Run("Second Cancel Fails", func(t *testing.T) {
		f := newMembershipFixture()
		f.requestRepo.On("Delete", ctx, int64(1), int64(7)).Return(domain.ErrNotFound)

		err := f.svc.CancelRequest(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestMembershipService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Approves Pending Request", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionApproveRequest).Return(nil)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.JoinRequest{
			CommunityID: 1, UserID: 7,
		}, nil)
		f.requestRepo.On("Approve", ctx, int64(1), int64(7), mock.AnythingOfType("time.Time")).Return(nil)
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.userRepo.On("GetByID", ctx, int64(7)).Return(&domain.User{
			ID: 7, Email: "alice@example.com", DisplayName: "Alice",
		}, nil)
		f.emailSvc.On("SendJoinApproved", ctx, "alice@example.com", "Alice", "Secret Society").Return(nil)

		err := f.svc.Approve(ctx, 1, 7, 100)
		assert.NoError(t, err)
		f.requestRepo.AssertCalled(t, "Approve", ctx, int64(1), int64(7), mock.AnythingOfType("time.Time"))
		f.emailSvc.AssertCalled(t, "SendJoinApproved", ctx, "alice@example.com", "Alice", "Secret Society")
	})

	t.Run("Non Owner Cannot Approve", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(8), int64(1), domain.ActionApproveRequest).Return(domain.ErrPermissionDenied)

		err := f.svc.Approve(ctx, 1, 7, 8)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		f.requestRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Approve Without Pending Request Fails", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionApproveRequest).Return(nil)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)

		err := f.svc.Approve(ctx, 1, 7, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Email Failure Does Not Unwind Approval", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionApproveRequest).Return(nil)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.JoinRequest{
			CommunityID: 1, UserID: 7,
		}, nil)
		f.requestRepo.On("Approve", ctx, int64(1), int64(7), mock.AnythingOfType("time.Time")).Return(nil)
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.userRepo.On("GetByID", ctx, int64(7)).Return(&domain.User{
			ID: 7, Email: "alice@example.com", DisplayName: "Alice",
		}, nil)
		f.emailSvc.On("SendJoinApproved", ctx, "alice@example.com", "Alice", "Secret Society").Return(assert.AnError)

		err := f.svc.Approve(ctx, 1, 7, 100)
		assert.NoError(t, err)
	})
}

func TestMembershipService_Deny(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Denies Pending Request", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionDenyRequest).Return(nil)
		f.requestRepo.On("Delete", ctx, int64(1), int64(7)).Return(nil)
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.userRepo.On("GetByID", ctx, int64(7)).Return(&domain.User{
			ID: 7, Email: "alice@example.com", DisplayName: "Alice",
		}, nil)
		f.emailSvc.On("SendJoinDenied", ctx, "alice@example.com", "Alice", "Secret Society").Return(nil)

		err := f.svc.Deny(ctx, 1, 7, 100)
		assert.NoError(t, err)
		f.membershipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Deny Without Pending Request Fails", func(t *testing.T) {
		f := newMembershipFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionDenyRequest).Return(nil)
		f.requestRepo.On("Delete", ctx, int64(1), int64(7)).Return(domain.ErrNotFound)

		err := f.svc.Deny(ctx, 1, 7, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestMembershipService_Leave(t *testing.T) {
	ctx := context.Background()

	t.Run("Member Leaves", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.Membership{
			CommunityID: 1, UserID: 7, Role: domain.RoleMember,
		}, nil)
		f.membershipRepo.On("Delete", ctx, int64(1), int64(7)).Return(nil)

		err := f.svc.Leave(ctx, 1, 7)
		assert.NoError(t, err)
	})

	t.Run("Owner Cannot Leave", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.On("Get", ctx, int64(1), int64(100)).Return(&domain.Membership{
			CommunityID: 1, UserID: 100, Role: domain.RoleOwner,
		}, nil)

		err := f.svc.Leave(ctx, 1, 100)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		f.membershipRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Former Owner Leaves After Transfer", func(t *testing.T) {
		// After an ownership transfer the old owner holds a plain Member
		// role and may leave like anyone else.
		f := newMembershipFixture()
		f.membershipRepo.On("Get", ctx, int64(1), int64(100)).Return(&domain.Membership{
			CommunityID: 1, UserID: 100, Role: domain.RoleMember,
		}, nil)
		f.membershipRepo.On("Delete", ctx, int64(1), int64(100)).Return(nil)

		err := f.svc.Leave(ctx, 1, 100)
		assert.NoError(t, err)
	})

	t.Run("Outsider Cannot Leave", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)

		err := f.svc.Leave(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestMembershipService_SetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Promotes Member To Event Manager", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.Membership{
			CommunityID: 1, UserID: 7, Role: domain.RoleMember,
		}, nil)
		f.membershipRepo.On("UpdateRole", ctx, int64(1), int64(7), domain.RoleEventManager).Return(nil)

		err := f.svc.SetRole(ctx, 1, 100, 7, domain.RoleEventManager)
		assert.NoError(t, err)
	})

	t.Run("Owner Role Cannot Be Assigned", func(t *testing.T) {
		f := newMembershipFixture()

		err := f.svc.SetRole(ctx, 1, 100, 7, domain.RoleOwner)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		f := newMembershipFixture()

		err := f.svc.SetRole(ctx, 1, 100, 7, domain.Role("SUPERUSER"))
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Non Owner Cannot Assign Roles", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)

		err := f.svc.SetRole(ctx, 1, 8, 7, domain.RoleModerator)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Owner Cannot Reassign Own Role", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)

		err := f.svc.SetRole(ctx, 1, 100, 100, domain.RoleMember)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("Target Must Be A Member", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)

		err := f.svc.SetRole(ctx, 1, 100, 7, domain.RoleModerator)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMembershipService_StatusOf(t *testing.T) {
	ctx := context.Background()

	t.Run("Member With Role", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.Membership{
			CommunityID: 1, UserID: 7, Role: domain.RoleModerator,
		}, nil)

		rel, err := f.svc.StatusOf(ctx, 1, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusMember, rel.Status)
		assert.Equal(t, domain.RoleModerator, rel.Role)
		assert.True(t, rel.IsMember())
	})

	t.Run("Requested", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(&domain.JoinRequest{
			CommunityID: 1, UserID: 7,
		}, nil)

		rel, err := f.svc.StatusOf(ctx, 1, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRequested, rel.Status)
		assert.Empty(t, rel.Role)
	})

	t.Run("Outsider", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(publicCommunity(1, 100), nil)
		f.membershipRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)
		f.requestRepo.On("Get", ctx, int64(1), int64(7)).Return(nil, domain.ErrNotFound)

		rel, err := f.svc.StatusOf(ctx, 1, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusOutsider, rel.Status)
	})

	t.Run("Missing Community", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.StatusOf(ctx, 42, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMembershipService_ListRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Lists Requests", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)
		f.requestRepo.On("ListByCommunity", ctx, int64(1)).Return([]domain.JoinRequest{
			{CommunityID: 1, UserID: 7},
		}, nil)

		requests, err := f.svc.ListRequests(ctx, 1, 100)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)
	})

	t.Run("Non Owner Denied", func(t *testing.T) {
		f := newMembershipFixture()
		f.communityRepo.On("GetByID", ctx, int64(1)).Return(privateCommunity(1, 100), nil)

		_, err := f.svc.ListRequests(ctx, 1, 7)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}
