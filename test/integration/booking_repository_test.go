package integration

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/model"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"
	"gymkaana-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Gym{}, &model.Plan{}, &model.Booking{}, &model.ActivityLog{}))
	return db
}

// seedGym creates a gym with a day pass plan and removes everything on cleanup.
func seedGym(t *testing.T, db *gorm.DB, uow unitofwork.UnitOfWork) (*entity.Gym, *entity.Plan) {
	t.Helper()
	ctx := context.Background()

	gym := &entity.Gym{
		Id:        uuid.Must(uuid.NewV7()),
		OwnerId:   uuid.New(),
		Name:      "Integration Gym " + uuid.NewString()[:8],
		Address:   "Koramangala, Bangalore",
		Status:    entity.GymStatusActive,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.GymRepository().Create(ctx, gym))

	plan := &entity.Plan{
		Id:        uuid.Must(uuid.NewV7()),
		GymId:     gym.Id,
		Name:      "Day Pass",
		Duration:  "1 Day",
		Price:     199,
		Sessions:  1,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.PlanRepository().Create(ctx, plan))

	t.Cleanup(func() {
		db.Unscoped().Where("gym_id = ?", gym.Id).Delete(&model.Booking{})
		db.Unscoped().Where("gym_id = ?", gym.Id).Delete(&model.Plan{})
		db.Unscoped().Where("id = ?", gym.Id).Delete(&model.Gym{})
	})
	return gym, plan
}

func newBooking(gym *entity.Gym, plan *entity.Plan, id uuid.UUID) *entity.Booking {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Booking{
		Id:          id,
		GymId:       gym.Id,
		PlanId:      plan.Id,
		UserId:      uuid.New(),
		MemberName:  "Integration Member",
		MemberEmail: "member@example.com",
		Amount:      plan.Price,
		StartDate:   now,
		EndDate:     now.Add(24 * time.Hour),
		Status:      entity.BookingStatusUpcoming,
		Refund:      entity.RefundDetails{Status: entity.BookingRefundNone},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestBookingRepository(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	gym, plan := seedGym(t, db, uow)
	repo := uow.BookingRepository()

	t.Run("Find with gym and plan", func(t *testing.T) {
		b := newBooking(gym, plan, uuid.Must(uuid.NewV7()))
		require.NoError(t, repo.Create(ctx, b))

		found, err := repo.FindOne(ctx, specification.ByID{ID: b.Id}, specification.WithGymAndPlan{})
		require.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.Gym)
		require.NotNil(t, found.Plan)
		assert.Equal(t, gym.Name, found.Gym.Name)
		assert.Equal(t, "1 Day", found.Plan.Duration)

		missing, err := repo.FindOne(ctx, specification.ByID{ID: uuid.New()})
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Suffix lookup prefers newest", func(t *testing.T) {
		suffix := strings.ToLower(uuid.NewString()[28:])
		older := newBooking(gym, plan, uuid.MustParse(uuid.NewString()[:28]+suffix))
		newer := newBooking(gym, plan, uuid.MustParse(uuid.NewString()[:28]+suffix))
		newer.CreatedAt = older.CreatedAt.Add(time.Minute)
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))

		match, err := repo.FindNewestByIdSuffix(ctx, strings.ToUpper(suffix))
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, newer.Id, match.Id)

		none, err := repo.FindNewestByIdSuffix(ctx, "%_%_%_%_")
		assert.NoError(t, err)
		assert.Nil(t, none, "wildcards are matched literally")
	})

	t.Run("Transition is conditional on status", func(t *testing.T) {
		b := newBooking(gym, plan, uuid.Must(uuid.NewV7()))
		require.NoError(t, repo.Create(ctx, b))

		b.Status = entity.BookingStatusActive
		b.UpdatedAt = time.Now()
		require.NoError(t, repo.Transition(ctx, b, entity.BookingStatusUpcoming))

		b.Status = entity.BookingStatusCancelled
		err := repo.Transition(ctx, b, entity.BookingStatusUpcoming)
		assert.ErrorIs(t, err, contract.ErrStaleBooking)

		stored, err := repo.FindOne(ctx, specification.ByID{ID: b.Id})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusActive, stored.Status)
	})

	t.Run("Transaction rollback", func(t *testing.T) {
		txUow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))

		b := newBooking(gym, plan, uuid.Must(uuid.NewV7()))
		require.NoError(t, txUow.BookingRepository().Create(ctx, b))
		require.NoError(t, txUow.Rollback())

		found, err := repo.FindOne(ctx, specification.ByID{ID: b.Id})
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGymRepository_OwnerOfDeletedGym(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	gym, _ := seedGym(t, db, uow)
	repo := uow.GymRepository()

	require.NoError(t, repo.Delete(ctx, gym.Id))

	gone, err := repo.FindOne(ctx, specification.ByID{ID: gym.Id})
	require.NoError(t, err)
	assert.Nil(t, gone)

	ownerId, found, err := repo.FindOwnerId(ctx, gym.Id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, gym.OwnerId, ownerId)

	ids, err := repo.FindIdsByOwner(ctx, gym.OwnerId)
	require.NoError(t, err)
	assert.Contains(t, ids, gym.Id)

	_, found, err = repo.FindOwnerId(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}
