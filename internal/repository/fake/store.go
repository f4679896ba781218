// Package fake is an in-memory unit of work for service tests. It interprets
// the specifications the services use; any other specification panics so a
// test cannot silently pass on an ignored filter.
package fake

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gymkaana-be/internal/entity"
	"gymkaana-be/internal/repository/contract"
	"gymkaana-be/internal/repository/specification"
	"gymkaana-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type tables struct {
	bookings   map[uuid.UUID]entity.Booking
	gyms       map[uuid.UUID]entity.Gym
	plans      map[uuid.UUID]entity.Plan
	activities []entity.Activity

	// removedGyms holds soft-deleted gyms.
	removedGyms map[uuid.UUID]entity.Gym
}

func (t tables) clone() tables {
	c := tables{
		bookings:   make(map[uuid.UUID]entity.Booking, len(t.bookings)),
		gyms:       make(map[uuid.UUID]entity.Gym, len(t.gyms)),
		plans:      make(map[uuid.UUID]entity.Plan, len(t.plans)),
		activities: append([]entity.Activity(nil), t.activities...),

		removedGyms: make(map[uuid.UUID]entity.Gym, len(t.removedGyms)),
	}
	for k, v := range t.bookings {
		c.bookings[k] = v
	}
	for k, v := range t.gyms {
		c.gyms[k] = v
	}
	for k, v := range t.plans {
		c.plans[k] = v
	}
	for k, v := range t.removedGyms {
		c.removedGyms[k] = v
	}
	return c
}

// Store holds every table and implements unitofwork.RepositoryFactory.
type Store struct {
	mu   sync.Mutex
	data tables

	// BeforeTransition runs before a booking transition is checked. Tests use
	// it to change the stored status underneath a request.
	BeforeTransition func(s *Store, id uuid.UUID)

	// GymLookups counts GymRepository.FindOne and FindOwnerId calls.
	GymLookups int
}

func NewStore() *Store {
	return &Store{data: tables{
		bookings: map[uuid.UUID]entity.Booking{},
		gyms:     map[uuid.UUID]entity.Gym{},
		plans:    map[uuid.UUID]entity.Plan{},

		removedGyms: map[uuid.UUID]entity.Gym{},
	}}
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: s}
}

// Seeding helpers bypass the repositories.

func (s *Store) PutGym(g entity.Gym) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.gyms[g.Id] = g
}

func (s *Store) PutPlan(p entity.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.plans[p.Id] = p
}

func (s *Store) PutBooking(b entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Gym, b.Plan = nil, nil
	s.data.bookings[b.Id] = b
}

// SetBookingStatus changes the stored status without going through a transition.
// Safe to call from BeforeTransition.
func (s *Store) SetBookingStatus(id uuid.UUID, status entity.BookingStatus) {
	b := s.data.bookings[id]
	b.Status = status
	s.data.bookings[id] = b
}

func (s *Store) Booking(id uuid.UUID) (entity.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	return b, ok
}

func (s *Store) Gym(id uuid.UUID) (entity.Gym, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.data.gyms[id]
	return g, ok
}

func (s *Store) Plan(id uuid.UUID) (entity.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.plans[id]
	return p, ok
}

func (s *Store) Bookings() []entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Booking, 0, len(s.data.bookings))
	for _, b := range s.data.bookings {
		out = append(out, b)
	}
	return out
}

func (s *Store) Activities() []entity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Activity(nil), s.data.activities...)
}

type unitOfWork struct {
	store    *Store
	snapshot *tables
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.snapshot != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	snap := u.store.data.clone()
	u.store.mu.Unlock()
	u.snapshot = &snap
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snapshot = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.mu.Lock()
	u.store.data = *u.snapshot
	u.store.mu.Unlock()
	u.snapshot = nil
	return nil
}

func (u *unitOfWork) BookingRepository() contract.BookingRepository {
	return &bookingRepository{store: u.store}
}

func (u *unitOfWork) GymRepository() contract.GymRepository {
	return &gymRepository{store: u.store}
}

func (u *unitOfWork) PlanRepository() contract.PlanRepository {
	return &planRepository{store: u.store}
}

func (u *unitOfWork) ActivityRepository() contract.ActivityRepository {
	return &activityRepository{store: u.store}
}

// query is the interpreted form of a specification list.
type query struct {
	ids       map[uuid.UUID]bool
	gymIds    map[uuid.UUID]bool
	ownerId   *uuid.UUID
	userId    *uuid.UUID
	statuses  map[string]bool
	enabled   bool
	preload   bool
	orders    []specification.OrderBy
	limit     int
	offset    int
	paginated bool
}

func parse(specs []specification.Specification) query {
	var q query
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			q.ids = map[uuid.UUID]bool{s.ID: true}
		case specification.ByGymID:
			q.gymIds = map[uuid.UUID]bool{s.GymID: true}
		case specification.ByGymIDs:
			q.gymIds = toSet(s.GymIDs)
		case specification.ByOwnerID:
			id := s.OwnerID
			q.ownerId = &id
		case specification.UserOwnedBy:
			id := s.UserID
			q.userId = &id
		case specification.ByGymStatuses:
			q.statuses = map[string]bool{}
			for _, st := range s.Statuses {
				q.statuses[string(st)] = true
			}
		case specification.EnabledPlans:
			q.enabled = true
		case specification.WithGymAndPlan:
			q.preload = true
		case specification.OrderBy:
			q.orders = append(q.orders, s)
		case specification.Pagination:
			q.limit, q.offset, q.paginated = s.Limit, s.Offset, true
		default:
			panic(fmt.Sprintf("fake: unsupported specification %T", spec))
		}
	}
	return q
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// row exposes the columns a query may filter or sort on.
type row interface {
	column(name string) (interface{}, bool)
}

func (q query) match(r row) bool {
	if q.ids != nil && !q.ids[value[uuid.UUID](r, "id")] {
		return false
	}
	if q.gymIds != nil && !q.gymIds[value[uuid.UUID](r, "gym_id")] {
		return false
	}
	if q.ownerId != nil && value[uuid.UUID](r, "owner_id") != *q.ownerId {
		return false
	}
	if q.userId != nil && value[uuid.UUID](r, "user_id") != *q.userId {
		return false
	}
	if q.statuses != nil && !q.statuses[value[string](r, "status")] {
		return false
	}
	if q.enabled && !value[bool](r, "enabled") {
		return false
	}
	return true
}

func value[T any](r row, name string) T {
	v, ok := r.column(name)
	if !ok {
		panic(fmt.Sprintf("fake: unknown column %q", name))
	}
	return v.(T)
}

func apply[R row](q query, rows []R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if q.match(r) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range q.orders {
			c := compare(value[interface{}](out[i], o.Field), value[interface{}](out[j], o.Field))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if q.paginated {
		if q.offset >= len(out) {
			return out[:0]
		}
		out = out[q.offset:]
		if q.limit > 0 && q.limit < len(out) {
			out = out[:q.limit]
		}
	}
	return out
}

func compare(a, b interface{}) int {
	switch x := a.(type) {
	case uuid.UUID:
		return strings.Compare(x.String(), b.(uuid.UUID).String())
	case string:
		return strings.Compare(x, b.(string))
	case float64:
		y := b.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	panic(fmt.Sprintf("fake: cannot order by %T", a))
}
