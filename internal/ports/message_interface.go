package ports

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/jmoiron/sqlx"
)

type MessageRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, message *model.Message) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, messageUUID string, recipientUUID string) (*model.Message, error)
	ListByRecipient(ctx context.Context, exec sqlx.ExtContext, recipientUUID string) ([]model.Message, error)
	MarkRead(ctx context.Context, exec sqlx.ExtContext, messageUUID string, recipientUUID string) error
	CountUnread(ctx context.Context, exec sqlx.ExtContext, recipientUUID string) (int, error)
}

type MessageService interface {
	SendMessage(ctx context.Context, recipientUUID string, message *model.Message) error
	Inbox(ctx context.Context) ([]model.Message, int, error)
	ReadMessage(ctx context.Context, messageUUID string) (*model.Message, error)
}
