package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/redis/go-redis/v9"
)

// SessionRepository : хранит гранты доступа к приватным статьям.
// Грант — это флаг (sessionID, slug), выданный после успешной проверки пароля.
// Живёт он столько же, сколько сессия: TTL записи равен TTL сессии.
type SessionRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewSessionRepository(rdb *config.RedisClient, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb, ttl}
}

// SetGrant : записывает грант после успешной проверки пароля
func (r *SessionRepository) SetGrant(ctx context.Context, sessionID string, articleSlug string) error {
	cmd := r.client.Client.Set(ctx, r.key(sessionID, articleSlug), "1", r.ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("[SessionRepo] ошибка сохранения гранта в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("[SessionRepo] неожиданный ответ Redis: %s", cmd.Val())
	}
	return nil
}

// HasGrant : true, если в этой сессии пароль статьи уже был введён верно
func (r *SessionRepository) HasGrant(ctx context.Context, sessionID string, articleSlug string) (bool, error) {
	err := r.client.Client.Get(ctx, r.key(sessionID, articleSlug)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil // гранта нет
	} else if err != nil {
		return false, util.LogError("[SessionRepo] ошибка чтения гранта из Redis", err)
	}
	return true, nil
}

func (r *SessionRepository) key(sessionID string, articleSlug string) string {
	return fmt.Sprintf("session:%s:%s_auth", sessionID, articleSlug)
}
