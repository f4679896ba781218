package service_test

import (
	"context"
	"testing"

	"gymkaana-be/internal/dto"
	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanService(f *fixture) service.PlanService {
	return service.NewPlanService(f.store, f.gate, f.clock.Now)
}

func TestPlanService_Create(t *testing.T) {
	disabled := false

	tests := []struct {
		name     string
		caller   entity.Caller
		req      dto.CreatePlanRequest
		wantKind apperror.Kind
	}{
		{name: "owner adds plan", caller: owner, req: dto.CreatePlanRequest{GymId: gymId.String(), Name: "Weekly", Price: 799, Duration: "7 Days"}},
		{name: "admin adds disabled plan", caller: admin, req: dto.CreatePlanRequest{GymId: gymId.String(), Name: "Weekly", Price: 799, Duration: "7 Days", Enabled: &disabled}},
		{name: "other owner", caller: other, req: dto.CreatePlanRequest{GymId: gymId.String(), Name: "Weekly", Price: 799, Duration: "7 Days"}, wantKind: apperror.KindAuthorization},
		{name: "member", caller: member, req: dto.CreatePlanRequest{GymId: gymId.String(), Name: "Weekly", Price: 799, Duration: "7 Days"}, wantKind: apperror.KindAuthorization},
		{name: "missing gym", caller: owner, req: dto.CreatePlanRequest{Name: "Weekly", Duration: "7 Days"}, wantKind: apperror.KindValidation},
		{name: "unknown gym", caller: owner, req: dto.CreatePlanRequest{GymId: uuid.NewString(), Name: "Weekly", Duration: "7 Days"}, wantKind: apperror.KindNotFound},
		{name: "discount above 100", caller: owner, req: dto.CreatePlanRequest{GymId: gymId.String(), Name: "Weekly", Duration: "7 Days", Discount: 120}, wantKind: apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(service.BookingServiceConfig{})
			res, err := newPlanService(f).Create(context.Background(), tt.caller, &tt.req)

			if tt.wantKind != "" {
				assert.True(t, apperror.IsKind(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, gymId, res.GymId)
			assert.Equal(t, tt.req.Enabled == nil, res.Enabled)

			stored, ok := f.store.Plan(res.Id)
			require.True(t, ok)
			assert.Equal(t, "7 Days", stored.Duration)
		})
	}
}

func TestPlanService_UpdateKeepsExistingBookings(t *testing.T) {
	f := newFixture(service.BookingServiceConfig{})
	b := f.putBooking(uuid.New(), dayPassId, entity.BookingStatusUpcoming, baseTime)
	plans := newPlanService(f)

	price := 249.0
	duration := "1 Month"
	res, err := plans.Update(context.Background(), owner, dayPassId, &dto.UpdatePlanRequest{Price: &price, Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, 249.0, res.Price)
	assert.NotNil(t, res.UpdatedAt)

	stored, _ := f.store.Booking(b.Id)
	assert.Equal(t, 199.0, stored.Amount, "booking amount is a snapshot")

	_, err = plans.Update(context.Background(), other, dayPassId, &dto.UpdatePlanRequest{Price: &price})
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))
}

func TestPlanService_ListGetDelete(t *testing.T) {
	f := newFixture(service.BookingServiceConfig{})
	plans := newPlanService(f)

	list, err := plans.ListByGym(context.Background(), gymId)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, dayPassId, list[0].Id)

	got, err := plans.GetById(context.Background(), monthlyId)
	require.NoError(t, err)
	assert.Equal(t, "1 Month", got.Duration)

	err = plans.Delete(context.Background(), other, monthlyId)
	assert.True(t, apperror.IsKind(err, apperror.KindAuthorization))

	require.NoError(t, plans.Delete(context.Background(), owner, monthlyId))
	_, err = plans.GetById(context.Background(), monthlyId)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
