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

// profilesPageSize : количество профилей на странице списка
const profilesPageSize = 6

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ListProfiles godoc
// @Summary Список профилей с поиском
// @Description Ищет профили по имени, описанию и навыкам. Пустой запрос возвращает все профили.
// @Tags Profiles
// @Produce json
// @Param search_query query string false "Поисковый запрос"
// @Param page query string false "Номер страницы"
// @Success 200 {object} requestresponse.ProfilePageResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/profiles [get]
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	query := r.URL.Query().Get("search_query")
	requestedPage := r.URL.Query().Get("page")

	window, page, err := h.profileService.SearchProfiles(ctx, query, requestedPage, profilesPageSize)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ProfilePageResponse{}
	resp.Response.Profiles = page.Items
	resp.Response.Page = page.Number
	resp.Response.PageSize = page.PageSize
	resp.Response.TotalItems = page.TotalItems
	resp.Response.TotalPages = page.TotalPages
	resp.Response.Window = window

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ListBySkill godoc
// @Summary Профили с указанным навыком
// @Tags Profiles
// @Produce json
// @Param slug path string true "Slug навыка"
// @Param page query string false "Номер страницы"
// @Success 200 {object} requestresponse.ProfilePageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/skills/{slug}/profiles [get]
func (h *ProfileHandler) ListBySkill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	skillSlug := chi.URLParam(r, "slug")
	requestedPage := r.URL.Query().Get("page")

	window, page, err := h.profileService.ListBySkill(ctx, skillSlug, requestedPage, profilesPageSize)
	if err != nil {
		log.Println(err)
		if strings.Contains(err.Error(), "не найден") {
			sendErrorResponse(w, http.StatusNotFound, "навык не найден")
		} else {
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ProfilePageResponse{}
	resp.Response.Profiles = page.Items
	resp.Response.Page = page.Number
	resp.Response.PageSize = page.PageSize
	resp.Response.TotalItems = page.TotalItems
	resp.Response.TotalPages = page.TotalPages
	resp.Response.Window = window

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// GetProfile godoc
// @Summary Публичная страница профиля
// @Tags Profiles
// @Produce json
// @Param uuid path string true "UUID профиля"
// @Success 200 {object} requestresponse.ProfileResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/profiles/{uuid} [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	view, err := h.profileService.GetProfile(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		if strings.Contains(err.Error(), "не найден") {
			sendErrorResponse(w, http.StatusNotFound, "профиль не найден")
		} else {
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.ProfileResponse{Response: view})
}

// GetAccount godoc
// @Summary Профиль текущего пользователя
// @Tags Profiles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.AccountResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account [get]
func (h *ProfileHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	profile, err := h.profileService.GetAccount(r.Context())
	if err != nil {
		handleProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.AccountResponse{Response: profile})
}

// UpdateAccount godoc
// @Summary Обновление профиля текущего пользователя
// @Tags Profiles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.UpdateProfileRequest true "Тело запроса"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account [put]
func (h *ProfileHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		sendErrorResponse(w, http.StatusBadRequest, "имя не может быть пустым")
		return
	}

	updated := &model.Profile{
		Name:      req.Name,
		Email:     req.Email,
		Username:  req.Username,
		Intro:     req.Intro,
		Bio:       req.Bio,
		ImagePath: req.ImagePath,
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
	}

	if err := h.profileService.UpdateAccount(ctx, updated); err != nil {
		handleProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": {"updated": true}}`))
}

// AddSkill godoc
// @Summary Добавление навыка в профиль
// @Tags Profiles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.SkillRequest true "Название навыка"
// @Success 201 {object} requestresponse.SkillResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/skills [post]
func (h *ProfileHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	skill, err := h.profileService.AddSkill(r.Context(), req.Name)
	if err != nil {
		if strings.Contains(err.Error(), "не может быть пустым") {
			sendErrorResponse(w, http.StatusBadRequest, "название навыка не может быть пустым")
			return
		}
		handleProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.SkillResponse{Response: skill})
}

// UpdateSkill godoc
// @Summary Переименование навыка в профиле
// @Tags Profiles
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID навыка"
// @Param body body requestresponse.SkillRequest true "Новое название навыка"
// @Success 200 {object} requestresponse.SkillResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/skills/{uuid} [put]
func (h *ProfileHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный JSON")
		return
	}

	skill, err := h.profileService.UpdateSkill(r.Context(), chi.URLParam(r, "uuid"), req.Name)
	if err != nil {
		if strings.Contains(err.Error(), "не может быть пустым") {
			sendErrorResponse(w, http.StatusBadRequest, "название навыка не может быть пустым")
			return
		}
		handleProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.SkillResponse{Response: skill})
}

// RemoveSkill godoc
// @Summary Удаление навыка из профиля
// @Tags Profiles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param uuid path string true "UUID навыка"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/skills/{uuid} [delete]
func (h *ProfileHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.profileService.RemoveSkill(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		handleProfileError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"response": {"deleted": true}}`))
}

// ImageUploadURL godoc
// @Summary Presigned URL для загрузки изображения профиля
// @Description Возвращает URL для прямой загрузки файла в хранилище и ключ объекта
// @Tags Profiles
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param filename query string true "Имя загружаемого файла"
// @Success 200 {object} requestresponse.UploadURLResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/account/image-upload [get]
func (h *ProfileHandler) ImageUploadURL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		sendErrorResponse(w, http.StatusBadRequest, "filename обязателен")
		return
	}

	uploadURL, objectKey, err := h.profileService.ImageUploadURL(r.Context(), filename)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	resp := requestresponse.UploadURLResponse{}
	resp.Response.UploadURL = uploadURL
	resp.Response.ObjectKey = objectKey

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func handleProfileError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case strings.Contains(err.Error(), "не авторизован"):
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
	case strings.Contains(err.Error(), "не найден"):
		sendErrorResponse(w, http.StatusNotFound, "не найдено")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
