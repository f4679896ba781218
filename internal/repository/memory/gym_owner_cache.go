package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// GymOwnerCache remembers the owning user of each gym so the booking
// authorization checks do not hit the gyms table on every verify.
type GymOwnerCache struct {
	cache *cache.Cache
}

func NewGymOwnerCache(ttl time.Duration) *GymOwnerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	c := cache.New(ttl, 2*ttl)
	return &GymOwnerCache{
		cache: c,
	}
}

func (r *GymOwnerCache) Save(gymId, ownerId uuid.UUID) {
	r.cache.Set(gymId.String(), ownerId, cache.DefaultExpiration)
}

func (r *GymOwnerCache) Get(gymId uuid.UUID) (uuid.UUID, bool) {
	if x, found := r.cache.Get(gymId.String()); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *GymOwnerCache) Delete(gymId uuid.UUID) {
	r.cache.Delete(gymId.String())
}
