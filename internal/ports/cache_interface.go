package ports

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
)

// SessionRepository : Redis слой грантов доступа к приватным статьям.
// Гранты привязаны к сессии посетителя и живут не дольше неё.
type SessionRepository interface {
	SetGrant(ctx context.Context, sessionID string, articleSlug string) error
	HasGrant(ctx context.Context, sessionID string, articleSlug string) (bool, error)
}

// CacheRepository : Redis кэш статей по slug
type CacheRepository interface {
	SetArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, slug string) (*model.Article, error)
	DeleteArticle(ctx context.Context, slug string) error
}
