package ports

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/pagination"
	"github.com/jmoiron/sqlx"
)

// ArticleRepository : SQL слой статей
type ArticleRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error
	GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Article, error)
	Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Article, error)
	ListByTag(ctx context.Context, exec sqlx.ExtContext, tagSlug string) ([]model.Article, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Article, error)
	Update(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error
	Delete(ctx context.Context, exec sqlx.ExtContext, articleUUID string, ownerUUID string) error
	SetTags(ctx context.Context, exec sqlx.ExtContext, articleUUID string, tagUUIDs []string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type TagRepository interface {
	GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Tag, error)
	GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Tag, error)
	ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Tag, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Tag, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) (*model.Review, error)
	Update(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error
	Delete(ctx context.Context, exec sqlx.ExtContext, reviewUUID string, ownerUUID string) error
	ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Review, error)
}

type ArticleService interface {
	SearchArticles(ctx context.Context, query string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Article], error)
	ListByTag(ctx context.Context, tagSlug string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Article], error)
	ListMine(ctx context.Context) ([]model.Article, error)
	GetArticle(ctx context.Context, slug string, sessionID string) (*model.ArticleView, error)
	CheckAccess(ctx context.Context, article *model.Article, sessionID string) (bool, error)
	SubmitPassword(ctx context.Context, slug string, sessionID string, password string) error
	CreateArticle(ctx context.Context, article *model.Article, password string, tagNames []string) (*model.Article, error)
	UpdateArticle(ctx context.Context, slug string, article *model.Article, password string, tagNames []string) error
	DeleteArticle(ctx context.Context, slug string) error
	ExportPDF(ctx context.Context, slug string, sessionID string) ([]byte, error)
	AddReview(ctx context.Context, articleSlug string, body string) (*model.Review, error)
	UpdateReview(ctx context.Context, reviewUUID string, body string) error
	DeleteReview(ctx context.Context, reviewUUID string) error
	ListTags(ctx context.Context) ([]model.Tag, error)
}

// ArticleExporter : генерация PDF-версии статьи
type ArticleExporter interface {
	RenderArticle(article *model.Article, reviews []model.Review) ([]byte, error)
}
