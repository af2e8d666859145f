package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/redis/go-redis/v9"
)

// CacheRepository : Redis кэш статей по slug.
// Запись инвалидируется при обновлении и удалении статьи.
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetArticle(ctx context.Context, article *model.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return util.LogError("ошибка сериализации статьи", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(article.Slug), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetArticle(ctx context.Context, slug string) (*model.Article, error) {
	val, err := r.client.Client.Get(ctx, r.key(slug)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения статьи из Redis", err)
	}

	var article model.Article
	if err := json.Unmarshal([]byte(val), &article); err != nil {
		return nil, util.LogError("ошибка десериализации статьи из кэша", err)
	}
	return &article, nil
}

func (r *CacheRepository) DeleteArticle(ctx context.Context, slug string) error {
	if err := r.client.Client.Del(ctx, r.key(slug)).Err(); err != nil {
		return util.LogError("ошибка удаления статьи из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(slug string) string {
	return fmt.Sprintf("article:%s", slug)
}
