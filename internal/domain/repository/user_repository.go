package repository

import (
	"context"

	"github.com/mbodji/boutique-api/internal/domain/entity"
)

// UserRepository définit le port de persistance pour User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	AdminExists(ctx context.Context) (bool, error)
}
