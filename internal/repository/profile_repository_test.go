package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProfileRepository_Search_EscapesLikeMetacharacters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewProfileRepository(db)

	columns := []string{"uuid", "user_uuid", "name", "email", "username", "intro", "bio",
		"image_path", "facebook", "instagram", "created_at"}

	// подчёркивание в запросе не должно совпадать с произвольным символом
	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs(`c\_sharp`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("p1", "u1", "Иван", "ivan@but.local", "ivan", "", "", "", "", "", time.Now()))

	profiles, err := repo.Search(context.Background(), db, "c_sharp")

	assert.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ListBySkill(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewProfileRepository(db)

	columns := []string{"uuid", "user_uuid", "name", "email", "username", "intro", "bio",
		"image_path", "facebook", "instagram", "created_at"}

	mock.ExpectQuery("SELECT p.uuid").
		WithArgs("go").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("p1", "u1", "Иван", "ivan@but.local", "ivan", "", "", "", "", "", time.Now()).
			AddRow("p2", "u2", "Анна", "anna@but.local", "anna", "", "", "", "", "", time.Now()))

	profiles, err := repo.ListBySkill(context.Background(), db, "go")

	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "p1", profiles[0].UUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
