// Package constraintsource implements application.ConstraintSource against
// Redis.
package constraintsource

import (
	"context"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

const (
	minWageKeyPrefix   = "constraint:min_wage:"
	sanctionedSetKey   = "constraint:sanctioned:carriers"
	scanCount          = 200
)

// Source loads the constraint cache from Redis keys as described in
// SPEC_FULL.md §4.10: a constraint:min_wage:<country_code> key per country
// and one constraint:sanctioned:carriers set. Missing keys yield empty
// mappings, never an error.
type Source struct {
	rdb *redis.Client
}

// New binds a Source to an existing Redis client.
func New(rdb *redis.Client) *Source {
	return &Source{rdb: rdb}
}

// LoadConstraints implements application.ConstraintSource.
func (s *Source) LoadConstraints(ctx context.Context) (*domain.ConstraintCache, error) {
	cache := domain.NewConstraintCache()

	wages, err := s.loadMinWages(ctx)
	if err != nil {
		return nil, err
	}
	cache.MinWageCentsByCountry = wages

	sanctioned, err := s.loadSanctionedCarriers(ctx)
	if err != nil {
		return nil, err
	}
	cache.SanctionedCarriers = sanctioned

	return cache, nil
}

func (s *Source) loadMinWages(ctx context.Context) (map[string]int64, error) {
	wages := make(map[string]int64)

	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, minWageKeyPrefix+"*", scanCount).Result()
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			values, err := s.rdb.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for i, key := range keys {
				country := strings.TrimPrefix(key, minWageKeyPrefix)
				raw, ok := values[i].(string)
				if !ok {
					continue
				}
				cents, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					continue
				}
				wages[country] = cents
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return wages, nil
}

func (s *Source) loadSanctionedCarriers(ctx context.Context) (map[string]bool, error) {
	members, err := s.rdb.SMembers(ctx, sanctionedSetKey).Result()
	if err != nil {
		if err == redis.Nil {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	sanctioned := make(map[string]bool, len(members))
	for _, code := range members {
		sanctioned[code] = true
	}
	return sanctioned, nil
}
