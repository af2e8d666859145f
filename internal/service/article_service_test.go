package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/security"
	"github.com/Akineyshen/BlogStudentsBUT/internal/service"
	"github.com/jmoiron/sqlx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error {
	args := m.Called(ctx, exec, article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Article, error) {
	args := m.Called(ctx, exec, slug)
	if a, ok := args.Get(0).(*model.Article); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleRepository) Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Article, error) {
	args := m.Called(ctx, exec, query)
	if list, ok := args.Get(0).([]model.Article); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleRepository) ListByTag(ctx context.Context, exec sqlx.ExtContext, tagSlug string) ([]model.Article, error) {
	args := m.Called(ctx, exec, tagSlug)
	if list, ok := args.Get(0).([]model.Article); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Article, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if list, ok := args.Get(0).([]model.Article); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, exec sqlx.ExtContext, article *model.Article) error {
	args := m.Called(ctx, exec, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, exec sqlx.ExtContext, articleUUID string, ownerUUID string) error {
	args := m.Called(ctx, exec, articleUUID, ownerUUID)
	return args.Error(0)
}

func (m *MockArticleRepository) SetTags(ctx context.Context, exec sqlx.ExtContext, articleUUID string, tagUUIDs []string) error {
	args := m.Called(ctx, exec, articleUUID, tagUUIDs)
	return args.Error(0)
}

func (m *MockArticleRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)

	var exec sqlx.ExtContext
	if e, ok := args.Get(0).(sqlx.ExtContext); ok {
		exec = e
	}

	commit, _ := args.Get(1).(func() error)
	if commit == nil {
		commit = func() error { return nil }
	}
	rollback, _ := args.Get(2).(func() error)
	if rollback == nil {
		rollback = func() error { return nil }
	}

	return exec, commit, rollback, args.Error(3)
}

// MockTagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Tag, error) {
	args := m.Called(ctx, exec, name)
	if tag, ok := args.Get(0).(*model.Tag); ok {
		return tag, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTagRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Tag, error) {
	args := m.Called(ctx, exec, slug)
	if tag, ok := args.Get(0).(*model.Tag); ok {
		return tag, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTagRepository) ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Tag, error) {
	args := m.Called(ctx, exec, articleUUID)
	if tags, ok := args.Get(0).([]model.Tag); ok {
		return tags, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Tag, error) {
	args := m.Called(ctx, exec)
	if tags, ok := args.Get(0).([]model.Tag); ok {
		return tags, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	args := m.Called(ctx, exec, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, reviewUUID string) (*model.Review, error) {
	args := m.Called(ctx, exec, reviewUUID)
	if r, ok := args.Get(0).(*model.Review); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, exec sqlx.ExtContext, review *model.Review) error {
	args := m.Called(ctx, exec, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, exec sqlx.ExtContext, reviewUUID string, ownerUUID string) error {
	args := m.Called(ctx, exec, reviewUUID, ownerUUID)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByArticle(ctx context.Context, exec sqlx.ExtContext, articleUUID string) ([]model.Review, error) {
	args := m.Called(ctx, exec, articleUUID)
	if reviews, ok := args.Get(0).([]model.Review); ok {
		return reviews, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SetGrant(ctx context.Context, sessionID string, articleSlug string) error {
	args := m.Called(ctx, sessionID, articleSlug)
	return args.Error(0)
}

func (m *MockSessionRepository) HasGrant(ctx context.Context, sessionID string, articleSlug string) (bool, error) {
	args := m.Called(ctx, sessionID, articleSlug)
	return args.Bool(0), args.Error(1)
}

// MockCacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetArticle(ctx context.Context, article *model.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockCacheRepository) GetArticle(ctx context.Context, slug string) (*model.Article, error) {
	args := m.Called(ctx, slug)
	if a, ok := args.Get(0).(*model.Article); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeleteArticle(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockS3Storage
type MockS3Storage struct {
	mock.Mock
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockArticleExporter
type MockArticleExporter struct {
	mock.Mock
}

func (m *MockArticleExporter) RenderArticle(article *model.Article, reviews []model.Review) ([]byte, error) {
	args := m.Called(article, reviews)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

type articleServiceMocks struct {
	articleRepo *MockArticleRepository
	tagRepo     *MockTagRepository
	reviewRepo  *MockReviewRepository
	profileRepo *MockProfileRepository
	sessionRepo *MockSessionRepository
	cacheRepo   *MockCacheRepository
	storage     *MockS3Storage
	exporter    *MockArticleExporter
}

func newTestArticleService() (*service.ArticleService, *articleServiceMocks) {
	m := &articleServiceMocks{
		articleRepo: new(MockArticleRepository),
		tagRepo:     new(MockTagRepository),
		reviewRepo:  new(MockReviewRepository),
		profileRepo: new(MockProfileRepository),
		sessionRepo: new(MockSessionRepository),
		cacheRepo:   new(MockCacheRepository),
		storage:     new(MockS3Storage),
		exporter:    new(MockArticleExporter),
	}

	svc := service.NewArticleService(
		m.articleRepo,
		m.tagRepo,
		m.reviewRepo,
		m.profileRepo,
		m.sessionRepo,
		m.cacheRepo,
		m.storage,
		m.exporter,
		15*time.Minute,
	)

	return svc, m
}

func dbContext() context.Context {
	return context.WithValue(context.Background(), "db", &config.Database{})
}

func authorContext(userUUID string) context.Context {
	claims := &security.Claims{UserUUID: userUUID}
	ctx := context.WithValue(context.Background(), security.UserContextKey, claims)
	return context.WithValue(ctx, "db", &config.Database{})
}

// ===== TESTS =====

func TestGetArticle_PublicAlwaysUnlocked(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	article := &model.Article{UUID: "a1", Slug: "go-generics", Title: "Дженерики в Go", Description: "Обзор"}

	m.cacheRepo.On("GetArticle", ctx, "go-generics").Return(nil, nil)
	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").Return(article, nil)
	m.tagRepo.On("ListByArticle", ctx, mock.Anything, "a1").Return([]model.Tag{{UUID: "t1", Name: "go"}}, nil)
	m.cacheRepo.On("SetArticle", ctx, article).Return(nil)
	m.reviewRepo.On("ListByArticle", ctx, mock.Anything, "a1").
		Return([]model.Review{{UUID: "r1", Body: "отлично"}}, nil)

	// публичная статья — грант не проверяется даже для пустой сессии
	view, err := svc.GetArticle(ctx, "go-generics", "")

	assert.NoError(t, err)
	assert.Equal(t, "Дженерики в Go", view.Article.Title)
	assert.Equal(t, 1, view.ReviewCount)
	assert.NotEmpty(t, view.DescriptionHTML)
	m.sessionRepo.AssertNotCalled(t, "HasGrant", mock.Anything, mock.Anything, mock.Anything)
	m.articleRepo.AssertExpectations(t)
	m.cacheRepo.AssertExpectations(t)
}

func TestGetArticle_FromCache(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	cached := &model.Article{UUID: "a1", Slug: "go-generics", Title: "Дженерики в Go", Description: "Обзор"}

	m.cacheRepo.On("GetArticle", ctx, "go-generics").Return(cached, nil)
	m.reviewRepo.On("ListByArticle", ctx, mock.Anything, "a1").Return([]model.Review{}, nil)

	view, err := svc.GetArticle(ctx, "go-generics", "sess1")

	assert.NoError(t, err)
	assert.Equal(t, cached, view.Article)
	m.articleRepo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetArticle_PrivateWithoutGrant(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	private := &model.Article{UUID: "a1", Slug: "secret-notes", IsPrivate: true}

	m.cacheRepo.On("GetArticle", ctx, "secret-notes").Return(private, nil)
	m.sessionRepo.On("HasGrant", ctx, "sess1", "secret-notes").Return(false, nil)

	view, err := svc.GetArticle(ctx, "secret-notes", "sess1")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, service.ErrArticleLocked)
	m.reviewRepo.AssertNotCalled(t, "ListByArticle", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetArticle_PrivateWithGrant(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	private := &model.Article{UUID: "a1", Slug: "secret-notes", Description: "текст", IsPrivate: true}

	m.cacheRepo.On("GetArticle", ctx, "secret-notes").Return(private, nil)
	m.sessionRepo.On("HasGrant", ctx, "sess1", "secret-notes").Return(true, nil)
	m.reviewRepo.On("ListByArticle", ctx, mock.Anything, "a1").Return([]model.Review{}, nil)

	view, err := svc.GetArticle(ctx, "secret-notes", "sess1")

	assert.NoError(t, err)
	assert.Equal(t, private, view.Article)
	m.sessionRepo.AssertExpectations(t)
}

// грант выдаётся одной сессии и не действует для другой
func TestCheckAccess_GrantIsPerSession(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := context.Background()

	private := &model.Article{UUID: "a1", Slug: "secret-notes", IsPrivate: true}

	m.sessionRepo.On("HasGrant", ctx, "sess1", "secret-notes").Return(true, nil)
	m.sessionRepo.On("HasGrant", ctx, "sess2", "secret-notes").Return(false, nil)

	unlocked, err := svc.CheckAccess(ctx, private, "sess1")
	assert.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = svc.CheckAccess(ctx, private, "sess2")
	assert.NoError(t, err)
	assert.False(t, unlocked)
}

func TestSubmitPassword_Correct(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	hash, _ := security.HashPassword("secret123")
	private := &model.Article{UUID: "a1", Slug: "secret-notes", IsPrivate: true, PasswordHash: hash}

	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "secret-notes").Return(private, nil)
	m.sessionRepo.On("SetGrant", ctx, "sess1", "secret-notes").Return(nil)

	err := svc.SubmitPassword(ctx, "secret-notes", "sess1", "secret123")

	assert.NoError(t, err)
	m.sessionRepo.AssertExpectations(t)
}

func TestSubmitPassword_Wrong(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	hash, _ := security.HashPassword("secret123")
	private := &model.Article{UUID: "a1", Slug: "secret-notes", IsPrivate: true, PasswordHash: hash}

	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "secret-notes").Return(private, nil)

	err := svc.SubmitPassword(ctx, "secret-notes", "sess1", "wrongpass")

	assert.ErrorIs(t, err, service.ErrWrongPassword)
	// при неверном пароле грант не записывается
	m.sessionRepo.AssertNotCalled(t, "SetGrant", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitPassword_PublicArticle(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	public := &model.Article{UUID: "a1", Slug: "go-generics", IsPrivate: false}

	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").Return(public, nil)

	err := svc.SubmitPassword(ctx, "go-generics", "sess1", "whatever")

	assert.NoError(t, err)
	m.sessionRepo.AssertNotCalled(t, "SetGrant", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateArticle_NotAuthorized(t *testing.T) {
	svc, _ := newTestArticleService()

	_, err := svc.CreateArticle(dbContext(), &model.Article{Title: "Заметка"}, "", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "пользователь не авторизован")
}

func TestCreateArticle_PrivateWithoutPassword(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1", Name: "Иван"}, nil)

	_, err := svc.CreateArticle(ctx, &model.Article{Title: "Секрет", IsPrivate: true}, "", nil)

	assert.ErrorIs(t, err, service.ErrPasswordRequired)
	m.articleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateArticle_Success(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1", Name: "Иван"}, nil)
	m.articleRepo.On("BeginTX", ctx).Return(nil, nil, nil, nil)
	m.articleRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
		return a.UUID != "" && a.OwnerUUID != nil && *a.OwnerUUID == "p1"
	})).Return(nil)
	m.tagRepo.On("GetOrCreate", ctx, mock.Anything, "go").Return(&model.Tag{UUID: "t1", Name: "go"}, nil)
	m.articleRepo.On("SetTags", ctx, mock.Anything, mock.Anything, []string{"t1"}).Return(nil)

	created, err := svc.CreateArticle(ctx, &model.Article{Title: "Заметка"}, "", []string{"go", "  "})

	assert.NoError(t, err)
	assert.Empty(t, created.PasswordHash)
	m.articleRepo.AssertExpectations(t)
	m.tagRepo.AssertExpectations(t)
}

func TestCreateArticle_PrivateHashesPassword(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	m.articleRepo.On("BeginTX", ctx).Return(nil, nil, nil, nil)
	m.articleRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
	m.articleRepo.On("SetTags", ctx, mock.Anything, mock.Anything, []string{}).Return(nil)

	created, err := svc.CreateArticle(ctx, &model.Article{Title: "Секрет", IsPrivate: true}, "secret123", nil)

	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.True(t, security.CheckPassword("secret123", created.PasswordHash))
}

func TestUpdateArticle_NotOwner(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	otherOwner := "p2"
	existing := &model.Article{UUID: "a1", Slug: "go-generics", OwnerUUID: &otherOwner}

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").Return(existing, nil)

	err := svc.UpdateArticle(ctx, "go-generics", &model.Article{Title: "Новый заголовок"}, "", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "доступ запрещён")
	m.articleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateArticle_KeepsExistingPasswordHash(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	owner := "p1"
	hash, _ := security.HashPassword("secret123")
	existing := &model.Article{UUID: "a1", Slug: "secret-notes", OwnerUUID: &owner, IsPrivate: true, PasswordHash: hash}

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "secret-notes").Return(existing, nil)
	m.articleRepo.On("BeginTX", ctx).Return(nil, nil, nil, nil)
	m.articleRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
		return a.PasswordHash == hash && a.Slug == "secret-notes"
	})).Return(nil)
	m.articleRepo.On("SetTags", ctx, mock.Anything, "a1", []string{}).Return(nil)
	m.cacheRepo.On("DeleteArticle", ctx, "secret-notes").Return(nil)

	updated := &model.Article{Title: "Секрет", IsPrivate: true}
	err := svc.UpdateArticle(ctx, "secret-notes", updated, "", nil)

	assert.NoError(t, err)
	m.articleRepo.AssertExpectations(t)
	m.cacheRepo.AssertExpectations(t)
}

func TestDeleteArticle_Success(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	owner := "p1"
	existing := &model.Article{UUID: "a1", Slug: "go-generics", OwnerUUID: &owner, ImagePath: "articles/a1.png"}

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").Return(existing, nil)
	m.articleRepo.On("Delete", ctx, mock.Anything, "a1", "p1").Return(nil)
	m.cacheRepo.On("DeleteArticle", ctx, "go-generics").Return(nil)
	m.storage.On("DeleteObject", ctx, "articles/a1.png").Return(nil)

	err := svc.DeleteArticle(ctx, "go-generics")

	assert.NoError(t, err)
	m.articleRepo.AssertExpectations(t)
	m.storage.AssertExpectations(t)
}

func TestSearchArticles_Pagination(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	articles := make([]model.Article, 13)
	for i := range articles {
		articles[i] = model.Article{UUID: fmt.Sprintf("a%d", i+1)}
	}

	m.articleRepo.On("Search", ctx, mock.Anything, "go").Return(articles, nil)

	window, page, err := svc.SearchArticles(ctx, "go", "2", 6)

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 13, page.TotalItems)
	assert.Len(t, page.Items, 6)
	assert.Equal(t, "a7", page.Items[0].UUID)
	assert.Equal(t, []int{1, 2, 3}, window)
}

func TestExportPDF_Locked(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	private := &model.Article{UUID: "a1", Slug: "secret-notes", IsPrivate: true}

	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "secret-notes").Return(private, nil)
	m.sessionRepo.On("HasGrant", ctx, "sess1", "secret-notes").Return(false, nil)

	data, err := svc.ExportPDF(ctx, "secret-notes", "sess1")

	assert.Nil(t, data)
	assert.ErrorIs(t, err, service.ErrArticleLocked)
	m.exporter.AssertNotCalled(t, "RenderArticle", mock.Anything, mock.Anything)
}

func TestExportPDF_Success(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	article := &model.Article{UUID: "a1", Slug: "go-generics", Title: "Дженерики в Go"}
	reviews := []model.Review{{UUID: "r1", Body: "отлично"}}

	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").Return(article, nil)
	m.tagRepo.On("ListByArticle", ctx, mock.Anything, "a1").Return([]model.Tag{}, nil)
	m.reviewRepo.On("ListByArticle", ctx, mock.Anything, "a1").Return(reviews, nil)
	m.exporter.On("RenderArticle", article, reviews).Return([]byte("%PDF-1.7"), nil)

	data, err := svc.ExportPDF(ctx, "go-generics", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	m.exporter.AssertExpectations(t)
}

func TestAddReview_Success(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1", Name: "Иван"}, nil)
	m.articleRepo.On("GetBySlug", ctx, mock.Anything, "go-generics").
		Return(&model.Article{UUID: "a1", Slug: "go-generics"}, nil)
	m.reviewRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.ArticleUUID == "a1" && r.OwnerName == "Иван" && r.Body == "полезно"
	})).Return(nil)

	review, err := svc.AddReview(ctx, "go-generics", "полезно")

	assert.NoError(t, err)
	assert.NotEmpty(t, review.UUID)
	m.reviewRepo.AssertExpectations(t)
}

func TestUpdateReview_NotOwner(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := authorContext("u1")

	otherOwner := "p2"

	m.profileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	m.reviewRepo.On("GetByUUID", ctx, mock.Anything, "r1").
		Return(&model.Review{UUID: "r1", OwnerUUID: &otherOwner}, nil)

	err := svc.UpdateReview(ctx, "r1", "новый текст")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "доступ запрещён")
	m.reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByTag_TagNotFound(t *testing.T) {
	svc, m := newTestArticleService()
	ctx := dbContext()

	m.tagRepo.On("GetBySlug", ctx, mock.Anything, "nosuch").Return(nil, errors.New("sql: no rows"))

	_, _, err := svc.ListByTag(ctx, "nosuch", "1", 6)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "тег не найден")
	m.articleRepo.AssertNotCalled(t, "ListByTag", mock.Anything, mock.Anything, mock.Anything)
}
