package ports

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/pagination"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, profileUUID string) (*model.Profile, error)
	GetByUserUUID(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.Profile, error)
	Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Profile, error)
	ListBySkill(ctx context.Context, exec sqlx.ExtContext, skillSlug string) ([]model.Profile, error)
	Update(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error
	ListSkills(ctx context.Context, exec sqlx.ExtContext, profileUUID string) ([]model.Skill, error)
	AddSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error
	RemoveSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error
}

type SkillRepository interface {
	GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Skill, error)
	GetBySlug(ctx context.Context, exec sqlx.ExtContext, slug string) (*model.Skill, error)
}

type ProfileService interface {
	SearchProfiles(ctx context.Context, query string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Profile], error)
	ListBySkill(ctx context.Context, skillSlug string, requestedPage string, pageSize int) ([]int, pagination.Page[model.Profile], error)
	GetProfile(ctx context.Context, profileUUID string) (*model.ProfileView, error)
	GetAccount(ctx context.Context) (*model.Profile, error)
	UpdateAccount(ctx context.Context, updated *model.Profile) error
	AddSkill(ctx context.Context, name string) (*model.Skill, error)
	UpdateSkill(ctx context.Context, skillUUID string, name string) (*model.Skill, error)
	RemoveSkill(ctx context.Context, skillUUID string) error
	ImageUploadURL(ctx context.Context, filename string) (string, string, error)
}
