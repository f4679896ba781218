package service_test

import (
	"context"
	"testing"
	"time"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_List(t *testing.T) {
	f := newFixture(service.BookingServiceConfig{})
	activities := service.NewActivityService(f.store)

	uow := f.store.NewUnitOfWork(context.Background())
	seed := []entity.Activity{
		{UserId: memberId, GymId: gymId, Action: "Booking Created"},
		{UserId: memberId, GymId: otherGymId, Action: "Booking Created"},
		{UserId: uuid.New(), GymId: gymId, Action: "Check-in Verified"},
	}
	for i := range seed {
		seed[i].Id = uuid.New()
		seed[i].Type = entity.ActivityTypeSuccess
		seed[i].CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
		require.NoError(t, uow.ActivityRepository().Create(context.Background(), &seed[i]))
	}

	tests := []struct {
		name    string
		caller  entity.Caller
		page    dto.PageQuery
		wantLen int
	}{
		{name: "admin sees all", caller: admin, wantLen: 3},
		{name: "owner sees own gym", caller: owner, wantLen: 2},
		{name: "member sees own", caller: member, wantLen: 2},
		{name: "page size", caller: admin, page: dto.PageQuery{Page: 2, Limit: 2}, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := activities.List(context.Background(), tt.caller, tt.page)
			require.NoError(t, err)
			assert.Len(t, res, tt.wantLen)
			for i := 1; i < len(res); i++ {
				assert.True(t, res[i-1].CreatedAt.After(res[i].CreatedAt), "newest first")
			}
		})
	}

	_, err := activities.List(context.Background(), entity.Caller{}, dto.PageQuery{})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))
}
