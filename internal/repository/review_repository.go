package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/jmoiron/sqlx"
)

type ReviewRepository struct {
	*config.Database
}

func NewReviewRepository(database *config.Database) *ReviewRepository {
	return &ReviewRepository{database}
}

// Create : сохраняет новый комментарий к статье
func (r *ReviewRepository) Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	query := `
		INSERT INTO reviews (uuid, article_uuid, owner_uuid, body)
		VALUES ($1, $2, $3, $4)
	`
	_, err := exec.ExecContext(ctx, query, review.UUID, review.ArticleUUID, review.OwnerUUID, review.Body)
	if err != nil {
		return util.LogError("[ReviewRepo] ошибка вставки комментария в БД", err)
	}
	return nil
}

// GetByUUID : ищет комментарий по UUID
func (r *ReviewRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) (*model.Review, error) {
	query := `
		SELECT r.uuid, r.article_uuid, r.owner_uuid, COALESCE(p.name, '') AS owner_name, r.body, r.created_at
		FROM reviews AS r
		LEFT JOIN profiles AS p ON p.uuid = r.owner_uuid
		WHERE r.uuid = $1
	`

	var review model.Review
	err := sqlx.GetContext(ctx, exec, &review, query, reviewUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[ReviewRepo] комментарий не найден", err)
		}
		return nil, util.LogError("[ReviewRepo] ошибка при выполнении запроса", err)
	}
	return &review, nil
}

// Update : меняет текст комментария, доступно только автору
func (r *ReviewRepository) Update(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	query := `UPDATE reviews SET body = $3 WHERE uuid = $1 AND owner_uuid = $2`

	result, err := exec.ExecContext(ctx, query, review.UUID, review.OwnerUUID, review.Body)
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось обновить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось проверить, обновлён ли комментарий", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ReviewRepo] комментарий не найден")
	}
	return nil
}

// Delete : удаляет комментарий, доступно только автору
func (r *ReviewRepository) Delete(ctx context.Context, exec sqlx.ExtContext, reviewUUID string, ownerUUID string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM reviews WHERE uuid = $1 AND owner_uuid = $2`, reviewUUID, ownerUUID)
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось удалить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ReviewRepo] не удалось проверить, удалён ли комментарий", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[ReviewRepo] комментарий не найден")
	}
	return nil
}

// ListByArticle : комментарии статьи, новые сверху
func (r *ReviewRepository) ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Review, error) {
	query := `
		SELECT r.uuid, r.article_uuid, r.owner_uuid, COALESCE(p.name, '') AS owner_name, r.body, r.created_at
		FROM reviews AS r
		LEFT JOIN profiles AS p ON p.uuid = r.owner_uuid
		WHERE r.article_uuid = $1
		ORDER BY r.created_at DESC
	`

	reviews := []model.Review{}
	if err := sqlx.SelectContext(ctx, exec, &reviews, query, articleUUID); err != nil {
		return nil, util.LogError("[ReviewRepo] ошибка выборки комментариев", err)
	}
	return reviews, nil
}
