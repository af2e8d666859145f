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

type MessageRepository struct {
	*config.Database
}

func NewMessageRepository(database *config.Database) *MessageRepository {
	return &MessageRepository{database}
}

// Create : сохраняет сообщение; отправитель может быть анонимным (sender_uuid = NULL)
func (r *MessageRepository) Create(ctx context.Context, exec sqlx.ExtContext, message *model.Message) error {
	query := `
		INSERT INTO messages (uuid, sender_uuid, recipient_uuid, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := exec.ExecContext(ctx, query,
		message.UUID,
		message.SenderUUID,
		message.RecipientUUID,
		message.Name,
		message.Email,
		message.Subject,
		message.Body)
	if err != nil {
		return util.LogError("[MessageRepo] ошибка вставки сообщения в БД", err)
	}
	return nil
}

// GetByUUID : сообщение по UUID, доступно только получателю
func (r *MessageRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, messageUUID string, recipientUUID string) (*model.Message, error) {
	query := `
		SELECT uuid, sender_uuid, recipient_uuid, name, email, subject, body, is_read, created_at
		FROM messages
		WHERE uuid = $1 AND recipient_uuid = $2
	`

	var message model.Message
	err := sqlx.GetContext(ctx, exec, &message, query, messageUUID, recipientUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[MessageRepo] сообщение не найдено", err)
		}
		return nil, util.LogError("[MessageRepo] ошибка при выполнении запроса", err)
	}
	return &message, nil
}

// ListByRecipient : входящие, непрочитанные сверху, затем новые
func (r *MessageRepository) ListByRecipient(ctx context.Context, exec sqlx.ExtContext, recipientUUID string) ([]model.Message, error) {
	query := `
		SELECT uuid, sender_uuid, recipient_uuid, name, email, subject, body, is_read, created_at
		FROM messages
		WHERE recipient_uuid = $1
		ORDER BY is_read ASC, created_at DESC
	`

	messages := []model.Message{}
	if err := sqlx.SelectContext(ctx, exec, &messages, query, recipientUUID); err != nil {
		return nil, util.LogError("[MessageRepo] ошибка выборки входящих", err)
	}
	return messages, nil
}

// MarkRead : помечает сообщение прочитанным
func (r *MessageRepository) MarkRead(ctx context.Context, exec sqlx.ExtContext, messageUUID string, recipientUUID string) error {
	query := `UPDATE messages SET is_read = TRUE WHERE uuid = $1 AND recipient_uuid = $2`

	result, err := exec.ExecContext(ctx, query, messageUUID, recipientUUID)
	if err != nil {
		return util.LogError("[MessageRepo] не удалось обновить сообщение", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[MessageRepo] не удалось проверить, обновлено ли сообщение", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[MessageRepo] сообщение не найдено")
	}
	return nil
}

// CountUnread : количество непрочитанных сообщений получателя
func (r *MessageRepository) CountUnread(ctx context.Context, exec sqlx.ExtContext, recipientUUID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE recipient_uuid = $1 AND is_read = FALSE`
	if err := sqlx.GetContext(ctx, exec, &count, query, recipientUUID); err != nil {
		return 0, util.LogError("[MessageRepo] ошибка подсчёта непрочитанных", err)
	}
	return count, nil
}
