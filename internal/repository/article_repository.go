package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/gosimple/slug"
	"github.com/jmoiron/sqlx"
)

type ArticleRepository struct {
	*config.Database
}

func NewArticleRepository(database *config.Database) *ArticleRepository {
	return &ArticleRepository{database}
}

// Create : сохраняет новую статью, slug выводится из заголовка
func (r *ArticleRepository) Create(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error {
	articleSlug, err := r.uniqueSlug(ctx, exec, article.Title, article.UUID)
	if err != nil {
		return err
	}
	article.Slug = articleSlug

	query := `
		INSERT INTO articles (uuid, owner_uuid, title, slug, description, image_path, source_link, is_private, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = exec.ExecContext(
		ctx,
		query,
		article.UUID,
		article.OwnerUUID,
		article.Title,
		article.Slug,
		article.Description,
		article.ImagePath,
		article.SourceLink,
		article.IsPrivate,
		article.PasswordHash)

	if err != nil {
		return util.LogError("[ArticleRepo] ошибка вставки статьи в БД", err)
	}
	return nil
}

// uniqueSlug : slug из заголовка; при коллизии добавляется суффикс из UUID
func (r *ArticleRepository) uniqueSlug(ctx context.Context, exec sqlx.ExtContext, title string, articleUUID string) (string, error) {
	base := slug.Make(title)

	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`, base)
	if err != nil {
		return "", util.LogError("[ArticleRepo] ошибка проверки slug", err)
	}
	if exists {
		return fmt.Sprintf("%s-%s", base, articleUUID[:8]), nil
	}
	return base, nil
}

// Search : поиск статей по свободному тексту.
// Пустой запрос возвращает все статьи. Совпадение ищется без учёта регистра
// в заголовке, описании, имени владельца и в названиях тегов статьи.
// DISTINCT убирает дубли, когда статья совпала через несколько тегов.
func (r *ArticleRepository) Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Article, error) {
	sqlQuery := `
		SELECT DISTINCT a.uuid, a.owner_uuid, COALESCE(p.name, '') AS owner_name,
		       a.title, a.slug, a.description, a.image_path, a.source_link,
		       a.total_votes, a.is_private, a.created_at
		FROM articles AS a
		LEFT JOIN profiles AS p ON p.uuid = a.owner_uuid
		LEFT JOIN article_tags AS at ON at.article_uuid = a.uuid
		LEFT JOIN tags AS t ON t.uuid = at.tag_uuid
		WHERE $1 = ''
		   OR a.title ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR a.description ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR p.name ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR t.name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY a.created_at DESC
	`

	articles := []model.Article{}
	if err := sqlx.SelectContext(ctx, exec, &articles, sqlQuery, escapeLike(query)); err != nil {
		return nil, util.LogError("[ArticleRepo] ошибка поиска статей", err)
	}
	return articles, nil
}

// escapeLike : экранирует метасимволы LIKE, чтобы запрос "100%" искал
// буквальную подстроку "100%", а не произвольный хвост
func escapeLike(query string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
}

// GetBySlug : возвращает статью вместе с хэшем пароля (нужен для проверки доступа)
func (r *ArticleRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, articleSlug string) (*model.Article, error) {
	query := `
		SELECT a.uuid, a.owner_uuid, COALESCE(p.name, '') AS owner_name,
		       a.title, a.slug, a.description, a.image_path, a.source_link,
		       a.total_votes, a.is_private, a.password_hash, a.created_at
		FROM articles AS a
		LEFT JOIN profiles AS p ON p.uuid = a.owner_uuid
		WHERE a.slug = $1
	`

	var article model.Article
	err := sqlx.GetContext(ctx, exec, &article, query, articleSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[ArticleRepo] статья не найдена", err)
		}
		return nil, util.LogError("[ArticleRepo] ошибка при выполнении запроса", err)
	}
	return &article, nil
}

// ListByTag : статьи с заданным тегом, новые сверху
func (r *ArticleRepository) ListByTag(ctx context.Context, exec sqlx.ExtContext, tagSlug string) ([]model.Article, error) {
	query := `
		SELECT a.uuid, a.owner_uuid, COALESCE(p.name, '') AS owner_name,
		       a.title, a.slug, a.description, a.image_path, a.source_link,
		       a.total_votes, a.is_private, a.created_at
		FROM articles AS a
		LEFT JOIN profiles AS p ON p.uuid = a.owner_uuid
		INNER JOIN article_tags AS at ON at.article_uuid = a.uuid
		INNER JOIN tags AS t ON t.uuid = at.tag_uuid
		WHERE t.slug = $1
		ORDER BY a.created_at DESC
	`

	articles := []model.Article{}
	if err := sqlx.SelectContext(ctx, exec, &articles, query, tagSlug); err != nil {
		return nil, util.LogError("[ArticleRepo] ошибка выборки статей по тегу", err)
	}
	return articles, nil
}

// ListByOwner : все статьи владельца
func (r *ArticleRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Article, error) {
	query := `
		SELECT uuid, owner_uuid, title, slug, description, image_path, source_link,
		       total_votes, is_private, created_at
		FROM articles
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
	`

	articles := []model.Article{}
	if err := sqlx.SelectContext(ctx, exec, &articles, query, ownerUUID); err != nil {
		return nil, util.LogError("[ArticleRepo] ошибка выборки статей владельца", err)
	}
	return articles, nil
}

// Update : обновляет поля статьи, slug при этом не меняется (ссылки остаются рабочими)
func (r *ArticleRepository) Update(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error {
	query := `
		UPDATE articles
		SET title = $3, description = $4, image_path = $5, source_link = $6,
		    is_private = $7, password_hash = $8
		WHERE uuid = $1 AND owner_uuid = $2
	`

	result, err := exec.ExecContext(ctx, query,
		article.UUID,
		article.OwnerUUID,
		article.Title,
		article.Description,
		article.ImagePath,
		article.SourceLink,
		article.IsPrivate,
		article.PasswordHash)
	if err != nil {
		return util.LogError("[ArticleRepo] не удалось обновить статью", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ArticleRepo] не удалось проверить, обновлена ли статья", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ArticleRepo] статья не найдена")
	}
	return nil
}

// Delete : только владелец может удалить статью
func (r *ArticleRepository) Delete(ctx context.Context, exec sqlx.ExtContext, articleUUID string, ownerUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM articles WHERE uuid = $1 AND owner_uuid = $2`, articleUUID, ownerUUID)
	if err != nil {
		return util.LogError("[ArticleRepo] не удалось удалить статью", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ArticleRepo] не удалось проверить, удалена ли статья", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ArticleRepo] статья не найдена")
	}
	return nil
}

// SetTags : полностью заменяет набор тегов статьи
func (r *ArticleRepository) SetTags(ctx context.Context, exec sqlx.ExtContext, articleUUID string, tagUUIDs []string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM article_tags WHERE article_uuid = $1`, articleUUID); err != nil {
		return util.LogError("[ArticleRepo] не удалось очистить теги статьи", err)
	}

	for _, tagUUID := range tagUUIDs {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO article_tags (article_uuid, tag_uuid)
			VALUES ($1, $2)
			ON CONFLICT (article_uuid, tag_uuid) DO NOTHING
		`, articleUUID, tagUUID)
		if err != nil {
			return util.LogError("[ArticleRepo] не удалось привязать тег к статье", err)
		}
	}
	return nil
}

func (r *ArticleRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Commit() }, func() error { return tx.Rollback() }, nil
}
