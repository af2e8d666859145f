package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/util"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository struct {
	*config.Database
}

func NewProfileRepository(database *config.Database) *ProfileRepository {
	return &ProfileRepository{database}
}

// Create : сохраняет профиль, создаётся вместе с учётной записью пользователя
func (r *ProfileRepository) Create(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (uuid, user_uuid, name, email, username, intro, bio, image_path, facebook, instagram)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := exec.ExecContext(ctx, query,
		profile.UUID,
		profile.UserUUID,
		profile.Name,
		profile.Email,
		profile.Username,
		profile.Intro,
		profile.Bio,
		profile.ImagePath,
		profile.Facebook,
		profile.Instagram)
	if err != nil {
		return util.LogError("[ProfileRepo] ошибка вставки профиля в БД", err)
	}
	return nil
}

// GetByUUID : ищет профиль по UUID
func (r *ProfileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, profileUUID string) (*model.Profile, error) {
	query := `
		SELECT uuid, user_uuid, name, email, username, intro, bio, image_path, facebook, instagram, created_at
		FROM profiles
		WHERE uuid = $1
	`

	var profile model.Profile
	err := sqlx.GetContext(ctx, exec, &profile, query, profileUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[ProfileRepo] профиль не найден", err)
		}
		return nil, util.LogError("[ProfileRepo] ошибка при выполнении запроса", err)
	}
	return &profile, nil
}

// GetByUserUUID : профиль по учётной записи пользователя
func (r *ProfileRepository) GetByUserUUID(ctx context.Context, exec sqlx.ExtContext, userUUID string) (*model.Profile, error) {
	query := `
		SELECT uuid, user_uuid, name, email, username, intro, bio, image_path, facebook, instagram, created_at
		FROM profiles
		WHERE user_uuid = $1
	`

	var profile model.Profile
	if err := sqlx.GetContext(ctx, exec, &profile, query, userUUID); err != nil {
		return nil, util.LogError("[ProfileRepo] профиль пользователя не найден", err)
	}
	return &profile, nil
}

// Search : поиск профилей по свободному тексту.
// Пустой запрос возвращает все профили. Совпадение ищется без учёта регистра
// в имени, кратком описании, биографии и в названиях навыков.
// DISTINCT убирает дубли при совпадении через несколько навыков.
func (r *ProfileRepository) Search(ctx context.Context, exec sqlx.ExtContext, query string) ([]model.Profile, error) {
	sqlQuery := `
		SELECT DISTINCT p.uuid, p.user_uuid, p.name, p.email, p.username, p.intro, p.bio,
		       p.image_path, p.facebook, p.instagram, p.created_at
		FROM profiles AS p
		LEFT JOIN profile_skills AS ps ON ps.profile_uuid = p.uuid
		LEFT JOIN skills AS s ON s.uuid = ps.skill_uuid
		WHERE $1 = ''
		   OR p.name ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR p.intro ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR p.bio ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR s.name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY p.created_at ASC
	`

	profiles := []model.Profile{}
	if err := sqlx.SelectContext(ctx, exec, &profiles, sqlQuery, escapeLike(query)); err != nil {
		return nil, util.LogError("[ProfileRepo] ошибка поиска профилей", err)
	}
	return profiles, nil
}

// ListBySkill : профили с заданным навыком, в том же порядке, что и поиск
func (r *ProfileRepository) ListBySkill(ctx context.Context, exec sqlx.ExtContext, skillSlug string) ([]model.Profile, error) {
	query := `
		SELECT p.uuid, p.user_uuid, p.name, p.email, p.username, p.intro, p.bio,
		       p.image_path, p.facebook, p.instagram, p.created_at
		FROM profiles AS p
		INNER JOIN profile_skills AS ps ON ps.profile_uuid = p.uuid
		INNER JOIN skills AS s ON s.uuid = ps.skill_uuid
		WHERE s.slug = $1
		ORDER BY p.created_at ASC
	`

	profiles := []model.Profile{}
	if err := sqlx.SelectContext(ctx, exec, &profiles, query, skillSlug); err != nil {
		return nil, util.LogError("[ProfileRepo] ошибка выборки профилей по навыку", err)
	}
	return profiles, nil
}

// Update : обновляет поля профиля
func (r *ProfileRepository) Update(ctx context.Context, exec sqlx.ExtContext, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, email = $3, username = $4, intro = $5, bio = $6,
		    image_path = $7, facebook = $8, instagram = $9
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		profile.UUID,
		profile.Name,
		profile.Email,
		profile.Username,
		profile.Intro,
		profile.Bio,
		profile.ImagePath,
		profile.Facebook,
		profile.Instagram)
	if err != nil {
		return util.LogError("[ProfileRepo] не удалось обновить профиль", err)
	}
	return nil
}

// ListSkills : навыки профиля в порядке добавления
func (r *ProfileRepository) ListSkills(ctx context.Context, exec sqlx.ExtContext, profileUUID string) ([]model.Skill, error) {
	query := `
		SELECT s.uuid, s.name, s.slug, s.created_at
		FROM skills AS s
		INNER JOIN profile_skills AS ps ON ps.skill_uuid = s.uuid
		WHERE ps.profile_uuid = $1
		ORDER BY ps.created_at ASC
	`

	skills := []model.Skill{}
	if err := sqlx.SelectContext(ctx, exec, &skills, query, profileUUID); err != nil {
		return nil, util.LogError("[ProfileRepo] ошибка выборки навыков", err)
	}
	return skills, nil
}

// AddSkill : привязывает навык к профилю
func (r *ProfileRepository) AddSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error {
	query := `
		INSERT INTO profile_skills (profile_uuid, skill_uuid)
		VALUES ($1, $2)
		ON CONFLICT (profile_uuid, skill_uuid) DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, profileUUID, skillUUID); err != nil {
		return util.LogError("[ProfileRepo] не удалось добавить навык", err)
	}
	return nil
}

// RemoveSkill : отвязывает навык от профиля
func (r *ProfileRepository) RemoveSkill(ctx context.Context, exec sqlx.ExtContext, profileUUID string, skillUUID string) error {
	query := `DELETE FROM profile_skills WHERE profile_uuid = $1 AND skill_uuid = $2`
	if _, err := exec.ExecContext(ctx, query, profileUUID, skillUUID); err != nil {
		return util.LogError("[ProfileRepo] не удалось удалить навык", err)
	}
	return nil
}
