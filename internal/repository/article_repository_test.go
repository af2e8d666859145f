package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Akineyshen/BlogStudentsBUT/config"
	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/Akineyshen/BlogStudentsBUT/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestArticleRepository_Create_SlugFromTitle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("generics-in-go").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO articles").
		WillReturnResult(sqlmock.NewResult(0, 1))

	article := &model.Article{
		UUID:  "11112222-3333-4444-5555-666677778888",
		Title: "Generics in Go",
	}
	err := repo.Create(context.Background(), db, article)

	assert.NoError(t, err)
	assert.Equal(t, "generics-in-go", article.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Create_SlugCollision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("generics-in-go").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("INSERT INTO articles").
		WillReturnResult(sqlmock.NewResult(0, 1))

	article := &model.Article{
		UUID:  "11112222-3333-4444-5555-666677778888",
		Title: "Generics in Go",
	}
	err := repo.Create(context.Background(), db, article)

	assert.NoError(t, err)
	// при коллизии к slug добавляется суффикс из UUID
	assert.Equal(t, "generics-in-go-11112222", article.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Search(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	columns := []string{"uuid", "owner_uuid", "owner_name", "title", "slug", "description",
		"image_path", "source_link", "total_votes", "is_private", "created_at"}

	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs("go").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a1", "p1", "Иван", "Дженерики в Go", "go-generics", "обзор", "", "", 0, false, time.Now()).
			AddRow("a2", nil, "", "Каналы", "channels", "про go", "", "", 0, true, time.Now()))

	articles, err := repo.Search(context.Background(), db, "go")

	assert.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "go-generics", articles[0].Slug)
	assert.Equal(t, "Иван", articles[0].OwnerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_Search_EscapesLikeMetacharacters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	columns := []string{"uuid", "owner_uuid", "owner_name", "title", "slug", "description",
		"image_path", "source_link", "total_votes", "is_private", "created_at"}

	// "100%" ищет буквальную подстроку, а не произвольный хвост после "100"
	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs(`100\%`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("a1", "p1", "Иван", "100% покрытие тестами", "100-coverage", "", "", "", 0, false, time.Now()))

	articles, err := repo.Search(context.Background(), db, "100%")

	assert.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_GetBySlug_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectQuery("SELECT a.uuid").
		WithArgs("nosuch").
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	article, err := repo.GetBySlug(context.Background(), db, "nosuch")

	assert.Nil(t, article)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "статья не найдена")
}

func TestArticleRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectExec("UPDATE articles").
		WillReturnResult(sqlmock.NewResult(0, 0))

	owner := "p1"
	err := repo.Update(context.Background(), db, &model.Article{UUID: "a1", OwnerUUID: &owner})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "статья не найдена")
}

func TestArticleRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectExec("DELETE FROM articles").
		WithArgs("a1", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), db, "a1", "p1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepository_SetTags_ReplacesAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewArticleRepository(db)

	mock.ExpectExec("DELETE FROM article_tags").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO article_tags").
		WithArgs("a1", "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO article_tags").
		WithArgs("a1", "t2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetTags(context.Background(), db, "a1", []string{"t1", "t2"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
