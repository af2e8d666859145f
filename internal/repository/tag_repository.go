package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	slugify "github.com/gosimple/slug"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TagRepository struct {
	*config.Database
}

func NewTagRepository(database *config.Database) *TagRepository {
	return &TagRepository{database}
}

// GetOrCreate : находит тег по slug или создаёт новый.
// Slug всегда выводится заново из имени, уникальность обеспечивает индекс.
func (r *TagRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Tag, error) {
	tagSlug := slugify.Make(name)

	query := `
		INSERT INTO tags (uuid, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING uuid, name, slug, created_at
	`

	var tag model.Tag
	err := sqlx.GetContext(ctx, exec, &tag, query, uuid.New().String(), name, tagSlug)
	if err != nil {
		return nil, util.LogError("[TagRepo] не удалось создать тег", err)
	}
	return &tag, nil
}

// GetBySlug : ищет тег по slug
func (r *TagRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, tagSlug string) (*model.Tag, error) {
	query := `SELECT uuid, name, slug, created_at FROM tags WHERE slug = $1`

	var tag model.Tag
	err := sqlx.GetContext(ctx, exec, &tag, query, tagSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[TagRepo] тег не найден", err)
		}
		return nil, util.LogError("[TagRepo] ошибка при выполнении запроса", err)
	}
	return &tag, nil
}

// ListByArticle : теги одной статьи
func (r *TagRepository) ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Tag, error) {
	query := `
		SELECT t.uuid, t.name, t.slug, t.created_at
		FROM tags AS t
		INNER JOIN article_tags AS at ON at.tag_uuid = t.uuid
		WHERE at.article_uuid = $1
		ORDER BY t.name ASC
	`

	tags := []model.Tag{}
	if err := sqlx.SelectContext(ctx, exec, &tags, query, articleUUID); err != nil {
		return nil, util.LogError("[TagRepo] ошибка выборки тегов статьи", err)
	}
	return tags, nil
}

// List : все теги
func (r *TagRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Tag, error) {
	tags := []model.Tag{}
	query := `SELECT uuid, name, slug, created_at FROM tags ORDER BY name ASC`
	if err := sqlx.SelectContext(ctx, exec, &tags, query); err != nil {
		return nil, util.LogError("[TagRepo] ошибка выборки тегов", err)
	}
	return tags, nil
}
