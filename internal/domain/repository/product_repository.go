package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mbodji/boutique-api/internal/domain/entity"
)

// Clés de tri acceptées par ProductFilter.
const (
	SortPrixAsc  = "prix_asc"
	SortPrixDesc = "prix_desc"
	SortNomAsc   = "nom_asc"
	SortNomDesc  = "nom_desc"
	SortRecent   = "recent" // défaut
)

// ProductFilter critères de listing des produits.
type ProductFilter struct {
	CategorieID string
	Search      string // recherche texte sur nom/description
	MinPrix     *decimal.Decimal
	MaxPrix     *decimal.Decimal
	Sort        string // une des constantes Sort* ; vide = SortRecent
	ActiveOnly  bool
}

// ProductRepository définit le port de persistance pour Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByNom(ctx context.Context, nom string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantiteStock int) error
	Delete(ctx context.Context, id string) error
}
