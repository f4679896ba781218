package fake

import (
	"context"
	"strings"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"

	"github.com/google/uuid"
)

type bookingRow struct{ entity.Booking }

func (r bookingRow) column(name string) (interface{}, bool) {
	switch name {
	case "id":
		return r.Id, true
	case "gym_id":
		return r.GymId, true
	case "user_id":
		return r.UserId, true
	case "status":
		return string(r.Status), true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

type gymRow struct{ entity.Gym }

func (r gymRow) column(name string) (interface{}, bool) {
	switch name {
	case "id":
		return r.Id, true
	case "owner_id":
		return r.OwnerId, true
	case "status":
		return string(r.Status), true
	case "name":
		return r.Name, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

type planRow struct{ entity.Plan }

func (r planRow) column(name string) (interface{}, bool) {
	switch name {
	case "id":
		return r.Id, true
	case "gym_id":
		return r.GymId, true
	case "enabled":
		return r.Enabled, true
	case "price":
		return r.Price, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

type activityRow struct{ entity.Activity }

func (r activityRow) column(name string) (interface{}, bool) {
	switch name {
	case "id":
		return r.Id, true
	case "gym_id":
		return r.GymId, true
	case "user_id":
		return r.UserId, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

type bookingRepository struct {
	store *Store
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.TransactionId != nil {
		for _, b := range r.store.data.bookings {
			if b.TransactionId != nil && *b.TransactionId == *booking.TransactionId {
				return errDuplicate("bookings.transaction_id")
			}
		}
	}
	stored := *booking
	stored.Gym, stored.Plan = nil, nil
	r.store.data.bookings[booking.Id] = stored
	return nil
}

func (r *bookingRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *bookingRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	q := parse(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([]bookingRow, 0, len(r.store.data.bookings))
	for _, b := range r.store.data.bookings {
		rows = append(rows, bookingRow{b})
	}

	out := make([]*entity.Booking, 0)
	for _, row := range apply(q, rows) {
		b := row.Booking
		if q.preload {
			r.store.preloadLocked(&b)
		}
		out = append(out, &b)
	}
	return out, nil
}

func (r *bookingRepository) FindNewestByIdSuffix(ctx context.Context, suffix string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	suffix = strings.ToLower(suffix)
	var found *entity.Booking
	for _, b := range r.store.data.bookings {
		if !strings.HasSuffix(b.Id.String(), suffix) {
			continue
		}
		if found == nil || b.CreatedAt.After(found.CreatedAt) ||
			(b.CreatedAt.Equal(found.CreatedAt) && b.Id.String() > found.Id.String()) {
			copied := b
			found = &copied
		}
	}
	return found, nil
}

func (r *bookingRepository) Transition(ctx context.Context, booking *entity.Booking, expected entity.BookingStatus) error {
	if hook := r.store.BeforeTransition; hook != nil {
		r.store.mu.Lock()
		hook(r.store, booking.Id)
		r.store.mu.Unlock()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.data.bookings[booking.Id]
	if !ok || stored.Status != expected {
		return contract.ErrStaleBooking
	}
	stored.Status = booking.Status
	stored.Cancellation = booking.Cancellation
	stored.Refund = booking.Refund
	stored.UpdatedAt = booking.UpdatedAt
	r.store.data.bookings[booking.Id] = stored
	return nil
}

// preloadLocked mirrors a SQL preload: soft-deleted relations stay nil.
func (s *Store) preloadLocked(b *entity.Booking) {
	if g, ok := s.data.gyms[b.GymId]; ok {
		b.Gym = &g
	}
	if p, ok := s.data.plans[b.PlanId]; ok {
		b.Plan = &p
	}
}

type gymRepository struct {
	store *Store
}

func (r *gymRepository) Create(ctx context.Context, gym *entity.Gym) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.gyms[gym.Id] = cloneGym(*gym)
	return nil
}

func (r *gymRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Gym, error) {
	r.store.mu.Lock()
	r.store.GymLookups++
	r.store.mu.Unlock()

	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *gymRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Gym, error) {
	q := parse(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([]gymRow, 0, len(r.store.data.gyms))
	for _, g := range r.store.data.gyms {
		rows = append(rows, gymRow{g})
	}

	out := make([]*entity.Gym, 0)
	for _, row := range apply(q, rows) {
		g := cloneGym(row.Gym)
		out = append(out, &g)
	}
	return out, nil
}

func (r *gymRepository) FindIdsByOwner(ctx context.Context, ownerId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var ids []uuid.UUID
	for _, table := range []map[uuid.UUID]entity.Gym{r.store.data.gyms, r.store.data.removedGyms} {
		for _, g := range table {
			if g.OwnerId == ownerId {
				ids = append(ids, g.Id)
			}
		}
	}
	return ids, nil
}

func (r *gymRepository) FindOwnerId(ctx context.Context, gymId uuid.UUID) (uuid.UUID, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.GymLookups++

	if g, ok := r.store.data.gyms[gymId]; ok {
		return g.OwnerId, true, nil
	}
	if g, ok := r.store.data.removedGyms[gymId]; ok {
		return g.OwnerId, true, nil
	}
	return uuid.Nil, false, nil
}

func (r *gymRepository) Update(ctx context.Context, gym *entity.Gym) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.data.gyms[gym.Id]; ok {
		r.store.data.gyms[gym.Id] = cloneGym(*gym)
	}
	return nil
}

func (r *gymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if g, ok := r.store.data.gyms[id]; ok {
		r.store.data.removedGyms[id] = g
		delete(r.store.data.gyms, id)
	}
	return nil
}

func cloneGym(g entity.Gym) entity.Gym {
	g.Facilities = append([]string(nil), g.Facilities...)
	return g
}

type planRepository struct {
	store *Store
}

func (r *planRepository) Create(ctx context.Context, plan *entity.Plan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.plans[plan.Id] = *plan
	return nil
}

func (r *planRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *planRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	q := parse(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([]planRow, 0, len(r.store.data.plans))
	for _, p := range r.store.data.plans {
		rows = append(rows, planRow{p})
	}

	out := make([]*entity.Plan, 0)
	for _, row := range apply(q, rows) {
		p := row.Plan
		out = append(out, &p)
	}
	return out, nil
}

func (r *planRepository) Update(ctx context.Context, plan *entity.Plan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.data.plans[plan.Id]; ok {
		r.store.data.plans[plan.Id] = *plan
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.data.plans, id)
	return nil
}

func (r *planRepository) DeleteByGymId(ctx context.Context, gymId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, p := range r.store.data.plans {
		if p.GymId == gymId {
			delete(r.store.data.plans, id)
		}
	}
	return nil
}

type activityRepository struct {
	store *Store
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.data.activities = append(r.store.data.activities, *activity)
	return nil
}

func (r *activityRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error) {
	q := parse(specs)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rows := make([]activityRow, 0, len(r.store.data.activities))
	for _, a := range r.store.data.activities {
		rows = append(rows, activityRow{a})
	}

	out := make([]*entity.Activity, 0)
	for _, row := range apply(q, rows) {
		a := row.Activity
		out = append(out, &a)
	}
	return out, nil
}

type errDuplicate string

func (e errDuplicate) Error() string {
	return "duplicate key value violates unique constraint " + string(e)
}
