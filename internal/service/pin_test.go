package service_test

import (
	"context"
	"testing"

	"unihub-backend/internal/domain"
	"unihub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type pinFixture struct {
	pinRepo *MockPinRepo
	authz   *MockAuthz
	svc     service.PinService
}

func newPinFixture() *pinFixture {
	f := &pinFixture{
		pinRepo: new(MockPinRepo),
		authz:   new(MockAuthz),
	}
	f.svc = service.NewPinService(f.pinRepo, f.authz, service.NewCommunityLocker())
	return f
}

func TestPinService_Pin(t *testing.T) {
	ctx := context.Background()

	t.Run("Pin Appends At End", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionPinPost).Return(nil)
		f.pinRepo.On("Get", ctx, int64(1), int64(55)).Return(nil, domain.ErrNotFound)
		f.pinRepo.On("Append", ctx, int64(1), int64(55), mock.AnythingOfType("time.Time")).Return(&domain.PinnedPost{
			CommunityID: 1, PostID: 55, Position: 2,
		}, nil)

		pin, err := f.svc.Pin(ctx, 1, 55, 100)
		assert.NoError(t, err)
		assert.Equal(t, 2, pin.Position)
	})

	t.Run("Double Pin Is A Conflict", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionPinPost).Return(nil)
		f.pinRepo.On("Get", ctx, int64(1), int64(55)).Return(&domain.PinnedPost{
			CommunityID: 1, PostID: 55, Position: 0,
		}, nil)

		_, err := f.svc.Pin(ctx, 1, 55, 100)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.pinRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non Owner Denied", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(7), int64(1), domain.ActionPinPost).Return(domain.ErrPermissionDenied)

		_, err := f.svc.Pin(ctx, 1, 55, 7)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestPinService_Unpin(t *testing.T) {
	ctx := context.Background()

	t.Run("Unpin Removes", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionUnpinPost).Return(nil)
		f.pinRepo.On("Remove", ctx, int64(1), int64(55)).Return(nil)

		err := f.svc.Unpin(ctx, 1, 55, 100)
		assert.NoError(t, err)
	})

	t.Run("Unpin Missing Pin Surfaces Not Found", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionUnpinPost).Return(nil)
		f.pinRepo.On("Remove", ctx, int64(1), int64(55)).Return(domain.ErrNotFound)

		err := f.svc.Unpin(ctx, 1, 55, 100)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPinService_Reorder(t *testing.T) {
	ctx := context.Background()

	current := []domain.PinnedPost{
		{CommunityID: 1, PostID: 10, Position: 0},
		{CommunityID: 1, PostID: 20, Position: 1},
		{CommunityID: 1, PostID: 30, Position: 2},
	}

	t.Run("Permutation Accepted", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionReorderPins).Return(nil)
		f.pinRepo.On("ListByCommunity", ctx, int64(1)).Return(current, nil)
		f.pinRepo.On("Reorder", ctx, int64(1), []int64{30, 10, 20}).Return(nil)

		err := f.svc.Reorder(ctx, 1, []int64{30, 10, 20}, 100)
		assert.NoError(t, err)
	})

	t.Run("Short List Rejected", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionReorderPins).Return(nil)
		f.pinRepo.On("ListByCommunity", ctx, int64(1)).Return(current, nil)

		err := f.svc.Reorder(ctx, 1, []int64{30, 10}, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		f.pinRepo.AssertNotCalled(t, "Reorder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unpinned Post Rejected", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionReorderPins).Return(nil)
		f.pinRepo.On("ListByCommunity", ctx, int64(1)).Return(current, nil)

		err := f.svc.Reorder(ctx, 1, []int64{30, 10, 99}, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Duplicate Post Rejected", func(t *testing.T) {
		f := newPinFixture()
		f.authz.On("Require", ctx, int64(100), int64(1), domain.ActionReorderPins).Return(nil)
		f.pinRepo.On("ListByCommunity", ctx, int64(1)).Return(current, nil)

		err := f.svc.Reorder(ctx, 1, []int64{30, 10, 10}, 100)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}
