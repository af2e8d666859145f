package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/pagination"
	"github.com/Akineyshen/BlogStudentsBUT/internal/ports"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrArticleLocked : приватная статья, у сессии нет гранта доступа
	ErrArticleLocked = errors.New("статья защищена паролем")
	// ErrWrongPassword : пароль не подошёл, грант не выдан
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrPasswordRequired : приватная статья не может существовать без пароля
	ErrPasswordRequired = errors.New("приватной статье нужен пароль")
)

type ArticleService struct {
	articleRepository ports.ArticleRepository
	tagRepository     ports.TagRepository
	reviewRepository  ports.ReviewRepository
	profileRepository ports.ProfileRepository
	sessionRepository ports.SessionRepository
	cacheRepository   ports.CacheRepository
	storage           ports.S3Storage
	exporter          ports.ArticleExporter
	urlTTL            time.Duration
}

func NewArticleService(
	articleRepository ports.ArticleRepository,
	tagRepository ports.TagRepository,
	reviewRepository ports.ReviewRepository,
	profileRepository ports.ProfileRepository,
	sessionRepository ports.SessionRepository,
	cacheRepository ports.CacheRepository,
	storage ports.S3Storage,
	exporter ports.ArticleExporter,
	urlTTL time.Duration,
) *ArticleService {
	return &ArticleService{
		articleRepository: articleRepository,
		tagRepository:     tagRepository,
		reviewRepository:  reviewRepository,
		profileRepository: profileRepository,
		sessionRepository: sessionRepository,
		cacheRepository:   cacheRepository,
		storage:           storage,
		exporter:          exporter,
		urlTTL:            urlTTL,
	}
}

// SearchArticles : поиск и пагинация списка статей.
// Порядок всегда один — от новых к старым, ранжирования по релевантности нет.
func (s *ArticleService) SearchArticles(ctx context.Context, query string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Article], error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, pagination.Page[model.Article]{}, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	articles, err := s.articleRepository.Search(ctx, db, query)
	if err != nil {
		return nil, pagination.Page[model.Article]{}, fmt.Errorf("[ArticleService] ошибка поиска статей: %w", err)
	}

	window, page := pagination.Paginate(articles, requestedPage, pageSize)
	return window, page, nil
}

// ListByTag : статьи с указанным тегом, с той же пагинацией, что и поиск
func (s *ArticleService) ListByTag(ctx context.Context, tagSlug string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Article], error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, pagination.Page[model.Article]{}, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	if _, err := s.tagRepository.GetBySlug(ctx, db, tagSlug); err != nil {
		return nil, pagination.Page[model.Article]{}, fmt.Errorf("[ArticleService] тег не найден: %w", err)
	}

	articles, err := s.articleRepository.ListByTag(ctx, db, tagSlug)
	if err != nil {
		return nil, pagination.Page[model.Article]{}, fmt.Errorf("[ArticleService] ошибка выборки статей по тегу: %w", err)
	}

	window, page := pagination.Paginate(articles, requestedPage, pageSize)
	return window, page, nil
}

// ListMine : все статьи текущего пользователя, включая приватные
func (s *ArticleService) ListMine(ctx context.Context) ([]model.Article, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	articles, err := s.articleRepository.ListByOwner(ctx, db, profile.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка выборки статей пользователя: %w", err)
	}
	return articles, nil
}

// GetArticle : возвращает статью для отображения.
// Для приватной статьи без гранта доступа возвращается ErrArticleLocked:
// вместо содержимого вызывающая сторона показывает форму ввода пароля.
func (s *ArticleService) GetArticle(ctx context.Context, slug string, sessionID string) (*model.ArticleView, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	article, err := s.cacheRepository.GetArticle(ctx, slug)
	if err != nil {
		log.Printf("[ArticleService] кэш недоступен: %v", err)
	}

	if article == nil {
		article, err = s.articleRepository.GetBySlug(ctx, db, slug)
		if err != nil {
			return nil, fmt.Errorf("[ArticleService] статья не найдена: %w", err)
		}

		tags, err := s.tagRepository.ListByArticle(ctx, db, article.UUID)
		if err != nil {
			return nil, fmt.Errorf("[ArticleService] ошибка выборки тегов: %w", err)
		}
		article.Tags = tags

		// в кэш статья попадает без password_hash (json:"-")
		if err := s.cacheRepository.SetArticle(ctx, article); err != nil {
			log.Printf("[ArticleService] не удалось сохранить статью в кэш: %v", err)
		}
	}

	unlocked, err := s.CheckAccess(ctx, article, sessionID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, ErrArticleLocked
	}

	reviews, err := s.reviewRepository.ListByArticle(ctx, db, article.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка выборки комментариев: %w", err)
	}

	descriptionHTML, err := util.RenderMarkdown(article.Description)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка рендеринга описания: %w", err)
	}

	view := &model.ArticleView{
		Article:         article,
		DescriptionHTML: descriptionHTML,
		ReviewCount:     len(reviews),
		Reviews:         reviews,
	}

	if article.ImagePath != "" {
		imageURL, err := s.storage.GeneratePresignedGetURL(ctx, article.ImagePath, s.urlTTL)
		if err != nil {
			log.Printf("[ArticleService] не удалось сгенерировать URL изображения: %v", err)
		} else {
			view.ImageURL = imageURL
		}
	}

	return view, nil
}

// CheckAccess : состояние гейта для пары (статья, сессия).
// Публичная статья открыта всегда; приватная — только после того, как в этой
// сессии был верно введён её пароль.
func (s *ArticleService) CheckAccess(ctx context.Context, article *model.Article, sessionID string) (bool, error) {
	if !article.IsPrivate {
		return true, nil
	}

	unlocked, err := s.sessionRepository.HasGrant(ctx, sessionID, article.Slug)
	if err != nil {
		return false, fmt.Errorf("[ArticleService] ошибка проверки гранта: %w", err)
	}
	return unlocked, nil
}

// SubmitPassword : проверка пароля приватной статьи.
// При совпадении выдаёт сессии грант доступа; при неверном пароле грант не
// записывается и возвращается ErrWrongPassword. Сама статья не изменяется.
func (s *ArticleService) SubmitPassword(ctx context.Context, slug string, sessionID string, password string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	// хэш берём только из БД, кэшированная копия его не содержит
	article, err := s.articleRepository.GetBySlug(ctx, db, slug)
	if err != nil {
		return fmt.Errorf("[ArticleService] статья не найдена: %w", err)
	}

	if !article.IsPrivate {
		return nil
	}

	if !security.CheckPassword(password, article.PasswordHash) {
		return ErrWrongPassword
	}

	if err := s.sessionRepository.SetGrant(ctx, sessionID, article.Slug); err != nil {
		return fmt.Errorf("[ArticleService] не удалось сохранить грант: %w", err)
	}
	return nil
}

// CreateArticle : создаёт статью текущего пользователя.
// Приватная статья обязана иметь пароль, он хэшируется до записи.
// Теги создаются по именам и привязываются в той же транзакции.
func (s *ArticleService) CreateArticle(ctx context.Context, article *model.Article, password string, tagNames []string) (*model.Article, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	if article.IsPrivate {
		if password == "" {
			return nil, ErrPasswordRequired
		}
		hash, err := security.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("[ArticleService] не удалось создать хэш пароля: %w", err)
		}
		article.PasswordHash = hash
	} else {
		article.PasswordHash = ""
	}

	if article.UUID == "" {
		article.UUID = uuid.New().String()
	}
	article.OwnerUUID = &profile.UUID

	tx, commit, rollback, err := s.articleRepository.BeginTX(ctx)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] не удалось открыть транзакцию: %w", err)
	}
	defer rollback()

	if err := s.articleRepository.Create(ctx, tx, article); err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка создания статьи: %w", err)
	}

	if err := s.attachTags(ctx, tx, article, tagNames); err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, fmt.Errorf("[ArticleService] не удалось зафиксировать транзакцию: %w", err)
	}

	return article, nil
}

// UpdateArticle : обновляет статью владельца.
// Slug не меняется; пустой пароль у приватной статьи означает «оставить старый».
func (s *ArticleService) UpdateArticle(ctx context.Context, slug string, article *model.Article, password string, tagNames []string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return err
	}

	existing, err := s.articleRepository.GetBySlug(ctx, db, slug)
	if err != nil {
		return fmt.Errorf("[ArticleService] статья не найдена: %w", err)
	}
	if existing.OwnerUUID == nil || *existing.OwnerUUID != profile.UUID {
		return fmt.Errorf("[ArticleService] доступ запрещён")
	}

	article.UUID = existing.UUID
	article.OwnerUUID = &profile.UUID
	article.Slug = existing.Slug

	switch {
	case !article.IsPrivate:
		article.PasswordHash = ""
	case password != "":
		hash, err := security.HashPassword(password)
		if err != nil {
			return fmt.Errorf("[ArticleService] не удалось создать хэш пароля: %w", err)
		}
		article.PasswordHash = hash
	case existing.PasswordHash != "":
		article.PasswordHash = existing.PasswordHash
	default:
		return ErrPasswordRequired
	}

	tx, commit, rollback, err := s.articleRepository.BeginTX(ctx)
	if err != nil {
		return fmt.Errorf("[ArticleService] не удалось открыть транзакцию: %w", err)
	}
	defer rollback()

	if err := s.articleRepository.Update(ctx, tx, article); err != nil {
		return fmt.Errorf("[ArticleService] ошибка обновления статьи: %w", err)
	}

	if err := s.attachTags(ctx, tx, article, tagNames); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return fmt.Errorf("[ArticleService] не удалось зафиксировать транзакцию: %w", err)
	}

	if err := s.cacheRepository.DeleteArticle(ctx, existing.Slug); err != nil {
		log.Printf("[ArticleService] не удалось инвалидировать кэш: %v", err)
	}
	return nil
}

// DeleteArticle : удаляет статью владельца вместе с изображением и кэшем
func (s *ArticleService) DeleteArticle(ctx context.Context, slug string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return err
	}

	existing, err := s.articleRepository.GetBySlug(ctx, db, slug)
	if err != nil {
		return fmt.Errorf("[ArticleService] статья не найдена: %w", err)
	}
	if existing.OwnerUUID == nil || *existing.OwnerUUID != profile.UUID {
		return fmt.Errorf("[ArticleService] доступ запрещён")
	}

	if err := s.articleRepository.Delete(ctx, db, existing.UUID, profile.UUID); err != nil {
		return fmt.Errorf("[ArticleService] ошибка удаления статьи: %w", err)
	}

	if err := s.cacheRepository.DeleteArticle(ctx, existing.Slug); err != nil {
		log.Printf("[ArticleService] не удалось инвалидировать кэш: %v", err)
	}

	if existing.ImagePath != "" {
		if err := s.storage.DeleteObject(ctx, existing.ImagePath); err != nil {
			log.Printf("[ArticleService] не удалось удалить изображение: %v", err)
		}
	}
	return nil
}

// ExportPDF : PDF-версия статьи, доступ проверяется так же, как при просмотре
func (s *ArticleService) ExportPDF(ctx context.Context, slug string, sessionID string) ([]byte, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	article, err := s.articleRepository.GetBySlug(ctx, db, slug)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] статья не найдена: %w", err)
	}

	unlocked, err := s.CheckAccess(ctx, article, sessionID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, ErrArticleLocked
	}

	tags, err := s.tagRepository.ListByArticle(ctx, db, article.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка выборки тегов: %w", err)
	}
	article.Tags = tags

	reviews, err := s.reviewRepository.ListByArticle(ctx, db, article.UUID)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка выборки комментариев: %w", err)
	}

	data, err := s.exporter.RenderArticle(article, reviews)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка генерации PDF: %w", err)
	}
	return data, nil
}

// AddReview : добавляет комментарий текущего пользователя к статье
func (s *ArticleService) AddReview(ctx context.Context, articleSlug string, body string) (*model.Review, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepository.GetBySlug(ctx, db, articleSlug)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] статья не найдена: %w", err)
	}

	review := &model.Review{
		UUID:        uuid.New().String(),
		ArticleUUID: article.UUID,
		OwnerUUID:   &profile.UUID,
		OwnerName:   profile.Name,
		Body:        body,
	}

	if err := s.reviewRepository.Create(ctx, db, review); err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка создания комментария: %w", err)
	}
	return review, nil
}

// UpdateReview : редактирование комментария, доступно только автору
func (s *ArticleService) UpdateReview(ctx context.Context, reviewUUID string, body string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return err
	}

	review, err := s.reviewRepository.GetByUUID(ctx, db, reviewUUID)
	if err != nil {
		return fmt.Errorf("[ArticleService] комментарий не найден: %w", err)
	}

	if review.OwnerUUID == nil || *review.OwnerUUID != profile.UUID {
		return fmt.Errorf("[ArticleService] доступ запрещён")
	}

	review.Body = body
	if err := s.reviewRepository.Update(ctx, db, review); err != nil {
		return fmt.Errorf("[ArticleService] ошибка обновления комментария: %w", err)
	}
	return nil
}

// DeleteReview : удаление комментария, доступно только автору
func (s *ArticleService) DeleteReview(ctx context.Context, reviewUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	profile, err := s.currentProfile(ctx, db)
	if err != nil {
		return err
	}

	if err := s.reviewRepository.Delete(ctx, db, reviewUUID, profile.UUID); err != nil {
		return fmt.Errorf("[ArticleService] ошибка удаления комментария: %w", err)
	}
	return nil
}

// ListTags : все теги для фильтров на сайте
func (s *ArticleService) ListTags(ctx context.Context) ([]model.Tag, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ArticleService] database connection не найден в context")
	}

	tags, err := s.tagRepository.List(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] ошибка выборки тегов: %w", err)
	}
	return tags, nil
}

func (s *ArticleService) currentProfile(ctx context.Context, db *config.Database) (*model.Profile, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[ArticleService] пользователь не авторизован")
	}

	profile, err := s.profileRepository.GetByUserUUID(ctx, db, claims.UserUUID)
	if err != nil {
		return nil, fmt.Errorf("[ArticleService] профиль пользователя не найден: %w", err)
	}
	return profile, nil
}

func (s *ArticleService) attachTags(ctx context.Context, exec sqlx.ExtContext, article *model.Article, tagNames []string) error {
	tagUUIDs := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := s.tagRepository.GetOrCreate(ctx, exec, name)
		if err != nil {
			return fmt.Errorf("[ArticleService] ошибка создания тега: %w", err)
		}
		tagUUIDs = append(tagUUIDs, tag.UUID)
	}

	if err := s.articleRepository.SetTags(ctx, exec, article.UUID, tagUUIDs); err != nil {
		return fmt.Errorf("[ArticleService] ошибка привязки тегов: %w", err)
	}
	return nil
}
