package repository

import (
	"context"

	"github.com/mbodji/boutique-api/internal/domain/entity"
)

// CategoryRepository définit le port de persistance pour Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByNom(ctx context.Context, nom string) (*entity.Category, error)
	// List retourne les catégories, les plus récentes d'abord.
	// activeOnly restreint aux catégories actives.
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
