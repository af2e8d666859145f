package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model/requestresponse"
	"github.com/Akineyshen/BlogStudentsBUT/internal/pagination"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/Akineyshen/BlogStudentsBUT/internal/service"
	"github.com/go-chi/chi/v5"
)

// articlesPageSize : количество статей на странице списка
const articlesPageSize = 6

// mainPageSize : количество статей на главной странице
const mainPageSize = 12

type ArticleHandler struct {
	articleService ports.ArticleService
}

func NewArticleHandler(articleService ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ListArticles godoc
// @Summary Список статей с поиском
// @Description Ищет статьи по заголовку, описанию, автору и тегам. Пустой запрос возвращает все статьи.
// @Tags Articles
// @Produce json
// @Param search_query query string false "Поисковый запрос"
// @Param page query string false "Номер страницы"
// @Success 200 {object} requestresponse.ArticlePageResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles [get]
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	query := r.URL.Query().Get("search_query")
	requestedPage := r.URL.Query().Get("page")

	window, page, err := h.articleService.SearchArticles(ctx, query, requestedPage, articlesPageSize)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	writeArticlePage(w, window, page)
}

// ListMain godoc
// @Summary Лента главной страницы
// @Description Те же статьи и поиск, что и в общем списке, но более крупными страницами.
// @Tags Articles
// @Produce json
// @Param search_query query string false "Поисковый запрос"
// @Param page query string false "Номер страницы"
// @Success 200 {object} requestresponse.ArticlePageResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/main [get]
func (h *ArticleHandler) ListMain(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	query := r.URL.Query().Get("search_query")
	requestedPage := r.URL.Query().Get("page")

	window, page, err := h.articleService.SearchArticles(ctx, query, requestedPage, mainPageSize)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	writeArticlePage(w, window, page)
}

// ListByTag godoc
// @Summary Статьи с указанным тегом
// @Tags Articles
// @Produce json
// @Param slug path string true "Slug тега"
// @Param page query string false "Номер страницы"
// @Success 200 {object} requestresponse.ArticlePageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tags/{slug}/articles [get]
func (h *ArticleHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	tagSlug := chi.URLParam(r, "slug")
	requestedPage := r.URL.Query().Get("page")

	window, page, err := h.articleService.ListByTag(ctx, tagSlug, requestedPage, articlesPageSize)
	if err != nil {
		log.Println(err)
		if strings.Contains(err.Error(), "не найден") {
			sendErrorResponse(w, http.StatusNotFound, "тег не найден")
		} else {
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	writeArticlePage(w, window, page)
}

// ListTags godoc
// @Summary Все теги
// @Tags Articles
// @Produce json
// @Success 200 {object} requestresponse.TagListResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tags [get]
func (h *ArticleHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tags, err := h.articleService.ListTags(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.TagListResponse{Response: tags})
}

// ListMine godoc
// @Summary Статьи текущего пользователя
// @Description Возвращает все статьи владельца, включая приватные
// @Tags Articles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/articles [get]
func (h *ArticleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	articles, err := h.articleService.ListMine(r.Context())
	if err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"response": articles})
}

// GetArticle godoc
// @Summary Просмотр статьи
// @Description Возвращает статью с комментариями. Для приватной статьи без введённого пароля возвращается 401.
// @Tags Articles
// @Produce json
// @Param slug path string true "Slug статьи"
// @Success 200 {object} requestresponse.ArticleResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Статья защищена паролем"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug} [get]
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	sessionID, _ := security.GetSessionFromContext(ctx)

	view, err := h.articleService.GetArticle(ctx, slug, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleLocked):
			sendErrorResponse(w, http.StatusUnauthorized, "статья защищена паролем")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, http.StatusNotFound, "статья не найдена")
		default:
			log.Println(err)
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ArticleResponse{Response: view})
}

// SubmitPassword godoc
// @Summary Ввод пароля приватной статьи
// @Description При верном пароле сессия получает доступ к статье до истечения сессии
// @Tags Articles
// @Accept json
// @Produce json
// @Param slug path string true "Slug статьи"
// @Param body body requestresponse.ArticlePasswordRequest true "Пароль"
// @Success 200 {object} requestresponse.ArticleUnlockedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный пароль"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug}/password [post]
func (h *ArticleHandler) SubmitPassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	sessionID, _ := security.GetSessionFromContext(ctx)

	var req requestresponse.ArticlePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if err := h.articleService.SubmitPassword(ctx, slug, sessionID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			sendErrorResponse(w, http.StatusUnauthorized, "неверный пароль")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, http.StatusNotFound, "статья не найдена")
		default:
			log.Println(err)
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ArticleUnlockedResponse{}
	resp.Response.Unlocked = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// CreateArticle godoc
// @Summary Создание статьи
// @Tags Articles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateArticleRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ArticleResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles [post]
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		sendErrorResponse(w, http.StatusBadRequest, "заголовок не может быть пустым")
		return
	}

	article := &model.Article{
		Title:       req.Title,
		Description: req.Description,
		SourceLink:  req.SourceLink,
		ImagePath:   req.ImagePath,
		IsPrivate:   req.IsPrivate,
	}

	created, err := h.articleService.CreateArticle(ctx, article, req.Password, req.Tags)
	if err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.ArticleResponse{Response: &model.ArticleView{Article: created}})
}

// UpdateArticle godoc
// @Summary Обновление статьи владельцем
// @Tags Articles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param slug path string true "Slug статьи"
// @Param body body requestresponse.CreateArticleRequest true "Тело запроса"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug} [put]
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")

	var req requestresponse.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	article := &model.Article{
		Title:       req.Title,
		Description: req.Description,
		SourceLink:  req.SourceLink,
		ImagePath:   req.ImagePath,
		IsPrivate:   req.IsPrivate,
	}

	if err := h.articleService.UpdateArticle(ctx, slug, article, req.Password, req.Tags); err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"response": {"updated": true}}`)
}

// DeleteArticle godoc
// @Summary Удаление статьи владельцем
// @Tags Articles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param slug path string true "Slug статьи"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug} [delete]
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if err := h.articleService.DeleteArticle(ctx, chi.URLParam(r, "slug")); err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"response": {"deleted": true}}`)
}

// ExportPDF godoc
// @Summary Скачивание статьи в PDF
// @Description Доступ проверяется так же, как при просмотре статьи
// @Tags Articles
// @Produce application/pdf
// @Param slug path string true "Slug статьи"
// @Success 200 {file} binary
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug}/pdf [get]
func (h *ArticleHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	sessionID, _ := security.GetSessionFromContext(ctx)

	data, err := h.articleService.ExportPDF(ctx, slug, sessionID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case errors.Is(err, service.ErrArticleLocked):
			sendErrorResponse(w, http.StatusUnauthorized, "статья защищена паролем")
		case strings.Contains(err.Error(), "не найдена"):
			sendErrorResponse(w, http.StatusNotFound, "статья не найдена")
		default:
			log.Println(err)
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// AddReview godoc
// @Summary Добавление комментария к статье
// @Tags Reviews
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param slug path string true "Slug статьи"
// @Param body body requestresponse.ReviewRequest true "Тело комментария"
// @Success 201 {object} requestresponse.ReviewResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/articles/{slug}/reviews [post]
func (h *ArticleHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		sendErrorResponse(w, http.StatusBadRequest, "комментарий не может быть пустым")
		return
	}

	review, err := h.articleService.AddReview(ctx, chi.URLParam(r, "slug"), req.Body)
	if err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.ReviewResponse{Response: review})
}

// UpdateReview godoc
// @Summary Редактирование комментария автором
// @Tags Reviews
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID комментария"
// @Param body body requestresponse.ReviewRequest true "Тело комментария"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/reviews/{uuid} [put]
func (h *ArticleHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if err := h.articleService.UpdateReview(ctx, chi.URLParam(r, "uuid"), req.Body); err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"response": {"updated": true}}`)
}

// DeleteReview godoc
// @Summary Удаление комментария автором
// @Tags Reviews
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID комментария"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/reviews/{uuid} [delete]
func (h *ArticleHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if err := h.articleService.DeleteReview(ctx, chi.URLParam(r, "uuid")); err != nil {
		handleArticleMutationError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"response": {"deleted": true}}`)
}

func writeArticlePage(w http.ResponseWriter, window []int, page pagination.Page[model.Article]) {
	resp := requestresponse.ArticlePageResponse{}
	resp.Response.Articles = page.Items
	resp.Response.Page = page.Number
	resp.Response.PageSize = page.PageSize
	resp.Response.TotalItems = page.TotalItems
	resp.Response.TotalPages = page.TotalPages
	resp.Response.Window = window

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func handleArticleMutationError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, service.ErrPasswordRequired):
		sendErrorResponse(w, http.StatusBadRequest, "приватной статье нужен пароль")
	case strings.Contains(err.Error(), "не авторизован"):
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
	case strings.Contains(err.Error(), "доступ запрещён"):
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
	case strings.Contains(err.Error(), "не найден"):
		sendErrorResponse(w, http.StatusNotFound, "не найдено")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
