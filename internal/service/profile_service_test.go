package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/service"
	"github.com/jmoiron/sqlx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error {
	args := m.Called(ctx, exec, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, profileUUID string) (*model.Profile, error) {
	args := m.Called(ctx, exec, profileUUID)
	if p, ok := args.Get(0).(*model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) GetByUserUUID(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.Profile, error) {
	args := m.Called(ctx, exec, userUUID)
	if p, ok := args.Get(0).(*model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Profile, error) {
	args := m.Called(ctx, exec, query)
	if profiles, ok := args.Get(0).([]model.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error {
	args := m.Called(ctx, exec, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) ListSkills(ctx context.Context, exec sqlx.ExtContext, profileUUID string) ([]model.Skill, error) {
	args := m.Called(ctx, exec, profileUUID)
	if skills, ok := args.Get(0).([]model.Skill); ok {
		return skills, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) AddSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error {
	args := m.Called(ctx, exec, profileUUID, skillUUID)
	return args.Error(0)
}

func (m *MockProfileRepository) RemoveSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error {
	args := m.Called(ctx, exec, profileUUID, skillUUID)
	return args.Error(0)
}

func (m *MockProfileRepository) ListBySkill(ctx context.Context, exec sqlx.ExtContext, skillSlug string) ([]model.Profile, error) {
	args := m.Called(ctx, exec, skillSlug)
	if profiles, ok := args.Get(0).([]model.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSkillRepository
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Skill, error) {
	args := m.Called(ctx, exec, name)
	if skill, ok := args.Get(0).(*model.Skill); ok {
		return skill, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSkillRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Skill, error) {
	args := m.Called(ctx, exec, slug)
	if skill, ok := args.Get(0).(*model.Skill); ok {
		return skill, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

func newTestProfileService() (*service.ProfileService, *MockProfileRepository, *MockSkillRepository, *MockS3Storage) {
	mockProfileRepo := new(MockProfileRepository)
	mockSkillRepo := new(MockSkillRepository)
	mockStorage := new(MockS3Storage)

	svc := service.NewProfileService(mockProfileRepo, mockSkillRepo, mockStorage, 15*time.Minute)

	return svc, mockProfileRepo, mockSkillRepo, mockStorage
}

// ===== TESTS =====

func TestGetProfile_SkillsSplit(t *testing.T) {
	svc, mockProfileRepo, _, _ := newTestProfileService()
	ctx := dbContext()

	skills := make([]model.Skill, 8)
	for i := range skills {
		skills[i] = model.Skill{UUID: fmt.Sprintf("s%d", i+1), Name: fmt.Sprintf("skill-%d", i+1)}
	}

	mockProfileRepo.On("GetByUUID", ctx, mock.Anything, "p1").
		Return(&model.Profile{UUID: "p1", Name: "Иван"}, nil)
	mockProfileRepo.On("ListSkills", ctx, mock.Anything, "p1").Return(skills, nil)

	view, err := svc.GetProfile(ctx, "p1")

	assert.NoError(t, err)
	assert.Len(t, view.MainSkills, 6)
	assert.Len(t, view.OtherSkills, 2)
	assert.Equal(t, "s1", view.MainSkills[0].UUID)
	assert.Equal(t, "s7", view.OtherSkills[0].UUID)
}

func TestGetProfile_FewSkills(t *testing.T) {
	svc, mockProfileRepo, _, _ := newTestProfileService()
	ctx := dbContext()

	skills := []model.Skill{{UUID: "s1", Name: "go"}, {UUID: "s2", Name: "sql"}}

	mockProfileRepo.On("GetByUUID", ctx, mock.Anything, "p1").
		Return(&model.Profile{UUID: "p1"}, nil)
	mockProfileRepo.On("ListSkills", ctx, mock.Anything, "p1").Return(skills, nil)

	view, err := svc.GetProfile(ctx, "p1")

	assert.NoError(t, err)
	assert.Len(t, view.MainSkills, 2)
	assert.Empty(t, view.OtherSkills)
}

func TestGetProfile_WithImage(t *testing.T) {
	svc, mockProfileRepo, _, mockStorage := newTestProfileService()
	ctx := dbContext()

	mockProfileRepo.On("GetByUUID", ctx, mock.Anything, "p1").
		Return(&model.Profile{UUID: "p1", ImagePath: "profiles/p1.png"}, nil)
	mockProfileRepo.On("ListSkills", ctx, mock.Anything, "p1").Return([]model.Skill{}, nil)
	mockStorage.On("GeneratePresignedGetURL", ctx, "profiles/p1.png", 15*time.Minute).
		Return("https://s3.local/profiles/p1.png?sig", nil)

	view, err := svc.GetProfile(ctx, "p1")

	assert.NoError(t, err)
	assert.Equal(t, "https://s3.local/profiles/p1.png?sig", view.ImageURL)
	mockStorage.AssertExpectations(t)
}

func TestSearchProfiles_Pagination(t *testing.T) {
	svc, mockProfileRepo, _, _ := newTestProfileService()
	ctx := dbContext()

	profiles := make([]model.Profile, 25)
	for i := range profiles {
		profiles[i] = model.Profile{UUID: fmt.Sprintf("p%d", i+1)}
	}

	mockProfileRepo.On("Search", ctx, mock.Anything, "иван").Return(profiles, nil)

	window, page, err := svc.SearchProfiles(ctx, "иван", "3", 12)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, []int{1, 2, 3}, window)
}

func TestListBySkill_SkillNotFound(t *testing.T) {
	svc, mockProfileRepo, mockSkillRepo, _ := newTestProfileService()
	ctx := dbContext()

	mockSkillRepo.On("GetBySlug", ctx, mock.Anything, "nesushchestvuyushchij").
		Return(nil, fmt.Errorf("[SkillRepo] навык не найден"))

	_, _, err := svc.ListBySkill(ctx, "nesushchestvuyushchij", "1", 6)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "навык не найден")
	mockProfileRepo.AssertNotCalled(t, "ListBySkill", mock.Anything, mock.Anything, mock.Anything)
}

func TestListBySkill_Pagination(t *testing.T) {
	svc, mockProfileRepo, mockSkillRepo, _ := newTestProfileService()
	ctx := dbContext()

	profiles := make([]model.Profile, 13)
	for i := range profiles {
		profiles[i] = model.Profile{UUID: fmt.Sprintf("p%d", i+1)}
	}

	mockSkillRepo.On("GetBySlug", ctx, mock.Anything, "go").
		Return(&model.Skill{UUID: "s1", Name: "go", Slug: "go"}, nil)
	mockProfileRepo.On("ListBySkill", ctx, mock.Anything, "go").Return(profiles, nil)

	window, page, err := svc.ListBySkill(ctx, "go", "2", 6)

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "p7", page.Items[0].UUID)
	assert.Equal(t, []int{1, 2, 3}, window)
}

func TestUpdateSkill_Relinks(t *testing.T) {
	svc, mockProfileRepo, mockSkillRepo, _ := newTestProfileService()
	ctx := authorContext("u1")

	mockProfileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1"}, nil)
	mockProfileRepo.On("RemoveSkill", ctx, mock.Anything, "p1", "s-old").Return(nil)
	mockSkillRepo.On("GetOrCreate", ctx, mock.Anything, "golang").
		Return(&model.Skill{UUID: "s-new", Name: "golang"}, nil)
	mockProfileRepo.On("AddSkill", ctx, mock.Anything, "p1", "s-new").Return(nil)

	skill, err := svc.UpdateSkill(ctx, "s-old", "golang")

	assert.NoError(t, err)
	assert.Equal(t, "s-new", skill.UUID)
	mockProfileRepo.AssertExpectations(t)
	mockSkillRepo.AssertExpectations(t)
}

func TestUpdateSkill_EmptyName(t *testing.T) {
	svc, mockProfileRepo, _, _ := newTestProfileService()

	_, err := svc.UpdateSkill(authorContext("u1"), "s1", "   ")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "название навыка не может быть пустым")
	mockProfileRepo.AssertNotCalled(t, "RemoveSkill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAccount_PreservesIdentity(t *testing.T) {
	svc, mockProfileRepo, _, _ := newTestProfileService()
	ctx := authorContext("u1")

	userUUID := "u1"

	mockProfileRepo.On("GetByUserUUID", ctx, mock.Anything, "u1").
		Return(&model.Profile{UUID: "p1", UserUUID: &userUUID}, nil)
	mockProfileRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		return p.UUID == "p1" && p.UserUUID != nil && *p.UserUUID == "u1"
	})).Return(nil)

	// UUID из запроса игнорируется, профиль определяется по токену
	err := svc.UpdateAccount(ctx, &model.Profile{UUID: "чужой", Name: "Иван"})

	assert.NoError(t, err)
	mockProfileRepo.AssertExpectations(t)
}

func TestAddSkill(t *testing.T) {
	tests := []struct {
		name        string
		ctx         context.Context
		skillName   string
		setupMocks  func(profileRepo *MockProfileRepository, skillRepo *MockSkillRepository)
		expectError string
	}{
		{
			name:        "пустое название",
			ctx:         dbContext(),
			skillName:   "   ",
			expectError: "название навыка не может быть пустым",
		},
		{
			name:        "не авторизован",
			ctx:         dbContext(),
			skillName:   "go",
			expectError: "пользователь не авторизован",
		},
		{
			name:      "успешное добавление",
			ctx:       authorContext("u1"),
			skillName: "go",
			setupMocks: func(profileRepo *MockProfileRepository, skillRepo *MockSkillRepository) {
				profileRepo.On("GetByUserUUID", mock.Anything, mock.Anything, "u1").
					Return(&model.Profile{UUID: "p1"}, nil)
				skillRepo.On("GetOrCreate", mock.Anything, mock.Anything, "go").
					Return(&model.Skill{UUID: "s1", Name: "go"}, nil)
				profileRepo.On("AddSkill", mock.Anything, mock.Anything, "p1", "s1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, profileRepo, skillRepo, _ := newTestProfileService()
			if tt.setupMocks != nil {
				tt.setupMocks(profileRepo, skillRepo)
			}

			skill, err := svc.AddSkill(tt.ctx, tt.skillName)

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "s1", skill.UUID)
			}

			profileRepo.AssertExpectations(t)
			skillRepo.AssertExpectations(t)
		})
	}
}

func TestImageUploadURL(t *testing.T) {
	svc, _, _, mockStorage := newTestProfileService()

	t.Run("не авторизован", func(t *testing.T) {
		_, _, err := svc.ImageUploadURL(context.Background(), "avatar.png")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "пользователь не авторизован")
	})

	t.Run("успешная генерация", func(t *testing.T) {
		mockStorage.On("GeneratePresignedPutURL", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "profiles/") && strings.HasSuffix(key, ".png")
		}), 15*time.Minute).Return("https://s3.local/upload?sig", nil)

		url, key, err := svc.ImageUploadURL(authorContext("u1"), "avatar.png")

		assert.NoError(t, err)
		assert.Equal(t, "https://s3.local/upload?sig", url)
		assert.True(t, strings.HasSuffix(key, ".png"))
		mockStorage.AssertExpectations(t)
	})
}
