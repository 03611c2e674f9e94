package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// RedisSender кладет событие в список Redis (RPUSH), откуда его забирает внешний доставщик
type RedisSender struct {
	client *redis.Client
	queue  string
}

// NewRedisSender создает клиента Redis
func NewRedisSender(addr, password string, db int, queue string) *RedisSender {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSender{client: client, queue: queue}
}

func (s *RedisSender) Name() string { return "redis" }

// Ping проверяет соединение при старте
func (s *RedisSender) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", ErrDeliver, err)
	}
	return nil
}

func (s *RedisSender) Send(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.client.RPush(ctx, s.queue, payload).Err(); err != nil {
		return fmt.Errorf("%w: redis rpush %s: %v", ErrDeliver, s.queue, err)
	}
	return nil
}

// Close закрывает соединения клиента
func (s *RedisSender) Close() error {
	return s.client.Close()
}
