package fleet

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-profile rate limiters: profile_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(profileID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[profileID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[profileID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(profileID string, profileRate rate.Limit, profileBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[profileID] = rate.NewLimiter(profileRate, profileBurst)
}
