package requestresponse

import "github.com/Akineyshen/BlogStudentsBUT/internal/model"

// SendMessageRequest : тело сообщения владельцу профиля.
// Name и Email обязательны только для неавторизованного отправителя.
type SendMessageRequest struct {
	Name    string `json:"name,omitempty" example:"Anna Nowak"`
	Email   string `json:"email,omitempty" example:"anna@example.com"`
	Subject string `json:"subject" example:"Pytanie o artykuł"`
	Body    string `json:"body" example:"Cześć, mam pytanie..."`
}

// InboxResponse : входящие сообщения и число непрочитанных
type InboxResponse struct {
	Response struct {
		Messages    []model.Message `json:"messages"`
		UnreadCount int             `json:"unread_count" example:"2"`
	} `json:"response"`
}

// MessageResponse : открытое сообщение
type MessageResponse struct {
	Response *model.Message `json:"response"`
}
