package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
)

var _ checkout.CartStore = (*RedisStore)(nil)

// RedisStore guarda el carrito de cada sesión en Redis como JSON. Cada
// sesión vive aislada bajo su propia clave y expira sola si el operador
// abandona la caja.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore construye el store. ttl <= 0 desactiva la expiración.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get devuelve la sesión guardada, o una sesión vacía si no existe.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*checkout.Session, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &checkout.Session{}, nil
		}
		return nil, fmt.Errorf("cartstore get: %w", err)
	}
	var session checkout.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("cartstore decode: %w", err)
	}
	return &session, nil
}

// Save serializa y guarda la sesión renovando su TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, session *checkout.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("cartstore encode: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cartstore save: %w", err)
	}
	return nil
}

// Clear vacía el carrito de la sesión.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("cartstore clear: %w", err)
	}
	return nil
}
