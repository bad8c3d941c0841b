package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache redis-кэш списков доступных слотов с коротким TTL
// Ключ - пара (doctorID, date). Кэш не является источником истины:
// промахи и ошибки записи всегда допустимы, расчет повторяется заново
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// DefaultTTL время жизни записи по умолчанию
const DefaultTTL = 5 * time.Minute

// New создает кэш поверх redis-клиента
// При ttl <= 0 используется DefaultTTL
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key строит ключ кэша для пары (doctorID, date)
func Key(doctorID int64, date string) string {
	return fmt.Sprintf("doctor:%d:slots:%s", doctorID, date)
}

// Get возвращает закэшированный список слотов
// Второе возвращаемое значение false означает промах кэша
func (c *Cache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slotcache: get %q: %w", key, err)
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		// Битая запись равносильна промаху
		return nil, false, fmt.Errorf("slotcache: decode %q: %w", key, err)
	}
	return slots, true, nil
}

// Set записывает список слотов с TTL кэша
// Запись best-effort: последняя запись побеждает, ошибки не фатальны для вызывающего
func (c *Cache) Set(ctx context.Context, key string, slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slotcache: encode %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("slotcache: set %q: %w", key, err)
	}
	return nil
}

// Invalidate удаляет запись кэша
// Вызывается внешним booking-сервисом после записи нового бронирования
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("slotcache: del %q: %w", key, err)
	}
	return nil
}
