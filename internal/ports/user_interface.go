package ports

import (
	"context"

	"github.com/Akineyshen/BlogStudentsBUT/internal/model"
	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error)
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid string, newPasswordHash string) error
	Exists(ctx context.Context, exec sqlx.ExtContext, login string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, login string, password string, name string, email string) (*model.TokensPair, error)
	UpdatePassword(ctx context.Context, newPassword string) error
}
