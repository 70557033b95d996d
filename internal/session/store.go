package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/skserveur/storefront/pkg/redis"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids in redis. Tokens expire after
// the configured TTL and are renewed on every authenticated request.
type Store struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func NewStore(adapter redis.RedisAdapter, ttl time.Duration) *Store {
	return &Store{
		redis: adapter,
		ttl:   ttl,
	}
}

// Create issues a fresh token for the user. A user may hold several live
// sessions at once.
func (s *Store) Create(userID int64) (string, error) {
	token := uuid.NewString()
	value := []byte(strconv.FormatInt(userID, 10))

	if err := s.redis.Set("session:"+token, value, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id behind a token and slides its expiry.
func (s *Store) Resolve(token string) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	value, err := s.redis.Get("session:" + token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, ErrSessionNotFound
	}

	if err := s.redis.Expire("session:"+token, s.ttl); err != nil {
		return 0, err
	}
	return userID, nil
}

func (s *Store) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Del("session:" + token)
}
