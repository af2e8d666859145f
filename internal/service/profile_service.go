package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/pagination"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/google/uuid"
)

// mainSkillsCount : сколько навыков показывается в основном блоке профиля
const mainSkillsCount = 6

type ProfileService struct {
	profileRepository ports.ProfileRepository
	skillRepository   ports.SkillRepository
	storage           ports.S3Storage
	urlTTL            time.Duration
}

func NewProfileService(
	profileRepository ports.ProfileRepository,
	skillRepository ports.SkillRepository,
	storage ports.S3Storage,
	urlTTL time.Duration,
) *ProfileService {
	return &ProfileService{
		profileRepository: profileRepository,
		skillRepository:   skillRepository,
		storage:           storage,
		urlTTL:            urlTTL,
	}
}

// SearchProfiles : поиск профилей по имени, описанию и навыкам с пагинацией
func (s *ProfileService) SearchProfiles(ctx context.Context, query string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Profile], error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, pagination.Page[model.Profile]{}, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	profiles, err := s.profileRepository.Search(ctx, db, query)
	if err != nil {
		return nil, pagination.Page[model.Profile]{}, fmt.Errorf("[ProfileService] ошибка поиска профилей: %w", err)
	}

	window, page := pagination.Paginate(profiles, requestedPage, pageSize)
	return window, page, nil
}

// ListBySkill : профили с указанным навыком, с той же пагинацией, что и поиск
func (s *ProfileService) ListBySkill(ctx context.Context, skillSlug string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Profile], error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, pagination.Page[model.Profile]{}, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	if _, err := s.skillRepository.GetBySlug(ctx, db, skillSlug); err != nil {
		return nil, pagination.Page[model.Profile]{}, fmt.Errorf("[ProfileService] навык не найден: %w", err)
	}

	profiles, err := s.profileRepository.ListBySkill(ctx, db, skillSlug)
	if err != nil {
		return nil, pagination.Page[model.Profile]{}, fmt.Errorf("[ProfileService] ошибка выборки профилей по навыку: %w", err)
	}

	window, page := pagination.Paginate(profiles, requestedPage, pageSize)
	return window, page, nil
}

// GetProfile : профиль для публичной страницы.
// Навыки делятся на основной блок и остальные.
func (s *ProfileService) GetProfile(ctx context.Context, profileUUID string) (*model.ProfileView, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	profile, err := s.profileRepository.GetByUUID(ctx, db, profileUUID)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] профиль не найден: %w", err)
	}

	skills, err := s.profileRepository.ListSkills(ctx, db, profile.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка выборки навыков: %w", err)
	}
	profile.Skills = skills

	view := &model.ProfileView{Profile: profile}
	if len(skills) > mainSkillsCount {
		view.MainSkills = skills[:mainSkillsCount]
		view.OtherSkills = skills[mainSkillsCount:]
	} else {
		view.MainSkills = skills
	}

	if profile.ImagePath != "" {
		imageURL, err := s.storage.GeneratePresignedGetURL(ctx, profile.ImagePath, s.urlTTL)
		if err != nil {
			log.Printf("[ProfileService] не удалось сгенерировать URL изображения: %v", err)
		} else {
			view.ImageURL = imageURL
		}
	}

	return view, nil
}

// GetAccount : профиль текущего пользователя со всеми навыками
func (s *ProfileService) GetAccount(ctx context.Context) (*model.Profile, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	profile, err := s.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	skills, err := s.profileRepository.ListSkills(ctx, db, profile.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка выборки навыков: %w", err)
	}
	profile.Skills = skills
	return profile, nil
}

// UpdateAccount : обновление профиля текущего пользователя
func (s *ProfileService) UpdateAccount(ctx context.Context, updated *model.Profile) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	profile, err := s.ownProfile(ctx, db)
	if err != nil {
		return err
	}

	updated.UUID = profile.UUID
	updated.UserUUID = profile.UserUUID

	if err := s.profileRepository.Update(ctx, db, updated); err != nil {
		return fmt.Errorf("[ProfileService] ошибка обновления профиля: %w", err)
	}
	return nil
}

// AddSkill : добавляет навык в профиль текущего пользователя.
// Одноимённые навыки разных пользователей ссылаются на одну запись.
func (s *ProfileService) AddSkill(ctx context.Context, name string) (*model.Skill, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[ProfileService] название навыка не может быть пустым")
	}

	profile, err := s.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepository.GetOrCreate(ctx, db, name)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка создания навыка: %w", err)
	}

	if err := s.profileRepository.AddSkill(ctx, db, profile.UUID, skill.UUID); err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка привязки навыка: %w", err)
	}
	return skill, nil
}

// UpdateSkill : переименовывает навык в профиле текущего пользователя.
// Запись навыка общая для всех профилей, поэтому переименование — это
// перепривязка: старая связь удаляется, навык с новым именем привязывается.
func (s *ProfileService) UpdateSkill(ctx context.Context, skillUUID string, name string) (*model.Skill, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[ProfileService] название навыка не может быть пустым")
	}

	profile, err := s.ownProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepository.RemoveSkill(ctx, db, profile.UUID, skillUUID); err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка удаления навыка: %w", err)
	}

	skill, err := s.skillRepository.GetOrCreate(ctx, db, name)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка создания навыка: %w", err)
	}

	if err := s.profileRepository.AddSkill(ctx, db, profile.UUID, skill.UUID); err != nil {
		return nil, fmt.Errorf("[ProfileService] ошибка привязки навыка: %w", err)
	}
	return skill, nil
}

// RemoveSkill : убирает навык из профиля текущего пользователя
func (s *ProfileService) RemoveSkill(ctx context.Context, skillUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ProfileService] database connection не найден в context")
	}

	profile, err := s.ownProfile(ctx, db)
	if err != nil {
		return err
	}

	if err := s.profileRepository.RemoveSkill(ctx, db, profile.UUID, skillUUID); err != nil {
		return fmt.Errorf("[ProfileService] ошибка удаления навыка: %w", err)
	}
	return nil
}

// ImageUploadURL : presigned PUT URL для загрузки изображения профиля.
// Возвращает URL и ключ объекта, который нужно сохранить в профиле.
func (s *ProfileService) ImageUploadURL(ctx context.Context, filename string) (string, string, error) {
	if _, err := security.GetClaimsFromContext(ctx); err != nil {
		return "", "", fmt.Errorf("[ProfileService] пользователь не авторизован")
	}

	objectKey := fmt.Sprintf("profiles/%s%s", uuid.New().String(), filepath.Ext(filename))
	uploadURL, err := s.storage.GeneratePresignedPutURL(ctx, objectKey, s.urlTTL)
	if err != nil {
		return "", "", fmt.Errorf("[ProfileService] не удалось сгенерировать URL загрузки: %w", err)
	}
	return uploadURL, objectKey, nil
}

func (s *ProfileService) ownProfile(ctx context.Context, db *config.Database) (*model.Profile, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[ProfileService] пользователь не авторизован")
	}

	profile, err := s.profileRepository.GetByUserUUID(ctx, db, claims.UserUUID)
	if err != nil {
		return nil, fmt.Errorf("[ProfileService] профиль пользователя не найден: %w", err)
	}
	return profile, nil
}
