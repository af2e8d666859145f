package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/google/uuid"
)

type MessageService struct {
	messageRepository ports.MessageRepository
	profileRepository ports.ProfileRepository
}

func NewMessageService(messageRepository ports.MessageRepository, profileRepository ports.ProfileRepository) *MessageService {
	return &MessageService{
		messageRepository: messageRepository,
		profileRepository: profileRepository,
	}
}

// SendMessage : отправляет сообщение владельцу профиля.
// Авторизация не требуется: гость указывает имя и email вручную,
// у авторизованного пользователя они берутся из профиля.
func (s *MessageService) SendMessage(ctx context.Context, recipientUUID string, message *model.Message) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[MessageService] database connection не найден в context")
	}

	recipient, err := s.profileRepository.GetByUUID(ctx, db, recipientUUID)
	if err != nil {
		return fmt.Errorf("[MessageService] получатель не найден: %w", err)
	}

	if claims, err := security.GetClaimsFromContext(ctx); err == nil && claims != nil {
		sender, err := s.profileRepository.GetByUserUUID(ctx, db, claims.UserUUID)
		if err != nil {
			return fmt.Errorf("[MessageService] профиль отправителя не найден: %w", err)
		}
		message.SenderUUID = &sender.UUID
		message.Name = sender.Name
		message.Email = sender.Email
	}

	if strings.TrimSpace(message.Body) == "" {
		return fmt.Errorf("[MessageService] сообщение не может быть пустым")
	}

	message.UUID = uuid.New().String()
	message.RecipientUUID = recipient.UUID
	message.IsRead = false

	if err := s.messageRepository.Create(ctx, db, message); err != nil {
		return fmt.Errorf("[MessageService] ошибка отправки сообщения: %w", err)
	}
	return nil
}

// Inbox : входящие текущего пользователя, непрочитанные сверху,
// вторым значением возвращается их количество
func (s *MessageService) Inbox(ctx context.Context) ([]model.Message, int, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, 0, fmt.Errorf("[MessageService] database connection не найден в context")
	}

	recipient, err := s.ownProfile(ctx, db)
	if err != nil {
		return nil, 0, err
	}

	messages, err := s.messageRepository.ListByRecipient(ctx, db, recipient.UUID)
	if err != nil {
		return nil, 0, fmt.Errorf("[MessageService] ошибка выборки сообщений: %w", err)
	}

	unread, err := s.messageRepository.CountUnread(ctx, db, recipient.UUID)
	if err != nil {
		return nil, 0, fmt.Errorf("[MessageService] ошибка подсчёта непрочитанных: %w", err)
	}

	return messages, unread, nil
}

// ReadMessage : открывает сообщение и помечает его прочитанным
func (s *MessageService) ReadMessage(ctx context.Context, messageUUID string) (*model.Message, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[MessageService] database connection не найден в context")
	}

	recipient, err := s.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	message, err := s.messageRepository.GetByUUID(ctx, db, messageUUID, recipient.UUID)
	if err != nil {
		return nil, fmt.Errorf("[MessageService] сообщение не найдено: %w", err)
	}

	if !message.IsRead {
		if err := s.messageRepository.MarkRead(ctx, db, messageUUID, recipient.UUID); err != nil {
			return nil, fmt.Errorf("[MessageService] не удалось пометить сообщение прочитанным: %w", err)
		}
		message.IsRead = true
	}

	return message, nil
}

func (s *MessageService) ownProfile(ctx context.Context, db *config.Database) (*model.Profile, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[MessageService] пользователь не авторизован")
	}

	profile, err := s.profileRepository.GetByUserUUID(ctx, db, claims.UserUUID)
	if err != nil {
		return nil, fmt.Errorf("[MessageService] профиль пользователя не найден: %w", err)
	}
	return profile, nil
}
