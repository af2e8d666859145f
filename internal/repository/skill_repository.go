package repository

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	slugify "github.com/gosimple/slug"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SkillRepository struct {
	*config.Database
}

func NewSkillRepository(database *config.Database) *SkillRepository {
	return &SkillRepository{database}
}

// GetOrCreate : находит навык по slug или создаёт новый, по аналогии с тегами
func (r *SkillRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Skill, error) {
	skillSlug := slugify.Make(name)

	query := `
		INSERT INTO skills (uuid, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING uuid, name, slug, created_at
	`

	var skill model.Skill
	err := sqlx.GetContext(ctx, exec, &skill, query, uuid.New().String(), name, skillSlug)
	if err != nil {
		return nil, util.LogError("[SkillRepo] не удалось создать навык", err)
	}
	return &skill, nil
}

// GetBySlug : находит навык по slug
func (r *SkillRepository) GetBySlug(ctx context.Context, exec sqlx.ExtContext, skillSlug string) (*model.Skill, error) {
	query := `SELECT uuid, name, slug, created_at FROM skills WHERE slug = $1`

	var skill model.Skill
	if err := sqlx.GetContext(ctx, exec, &skill, query, skillSlug); err != nil {
		return nil, util.LogError("[SkillRepo] навык не найден", err)
	}
	return &skill, nil
}
