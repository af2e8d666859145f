package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model/requestresponse"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/go-chi/chi/v5"
)

type MessageHandler struct {
	messageService ports.MessageService
}

func NewMessageHandler(messageService ports.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage godoc
// @Summary Отправка сообщения владельцу профиля
// @Description Доступна и гостям: неавторизованный отправитель указывает имя и email в теле запроса
// @Tags Messages
// @Accept json
// @Produce json
// @Param uuid path string true "UUID профиля получателя"
// @Param body body requestresponse.SendMessageRequest true "Тело сообщения"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/profiles/{uuid}/messages [post]
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	message := &model.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := h.messageService.SendMessage(ctx, chi.URLParam(r, "uuid"), message); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не может быть пустым"):
			sendErrorResponse(w, http.StatusBadRequest, "сообщение не может быть пустым")
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "получатель не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"response": {"sent": true}}`))
}

// Inbox godoc
// @Summary Входящие сообщения текущего пользователя
// @Description Непрочитанные сообщения идут первыми
// @Tags Messages
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.InboxResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/inbox [get]
func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	messages, unread, err := h.messageService.Inbox(r.Context())
	if err != nil {
		handleProfileError(w, err)
		return
	}

	resp := requestresponse.InboxResponse{}
	resp.Response.Messages = messages
	resp.Response.UnreadCount = unread

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ReadMessage godoc
// @Summary Просмотр сообщения
// @Description Открытое сообщение помечается прочитанным
// @Tags Messages
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID сообщения"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/inbox/{uuid} [get]
func (h *MessageHandler) ReadMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	message, err := h.messageService.ReadMessage(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не авторизован"):
			sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		case strings.Contains(err.Error(), "не найдено"):
			sendErrorResponse(w, http.StatusNotFound, "сообщение не найдено")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.MessageResponse{Response: message})
}
