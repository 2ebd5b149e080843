package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur de persistance des produits.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nom, description, prix, categorie_id, quantite_stock, images, image_principale, date_ajout, date_modification, actif`

// Create persiste un nouveau produit. L'index unique sur le nom tranche les
// créations concurrentes (23505 -> ErrDuplicate) ; la FK catégorie remonte en
// erreur générique si la catégorie a disparu entre la vérification et l'insert.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Nom, product.Description, product.Prix, product.CategorieID,
		product.QuantiteStock, product.Images, product.ImagePrincipale,
		product.DateAjout, product.DateModification, product.Actif,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retourne un produit par ID, nil s'il n'existe pas.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByNom retourne un produit par nom (insensible à la casse), nil s'il n'existe pas.
func (r *ProductRepo) GetByNom(ctx context.Context, nom string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE LOWER(nom) = LOWER($1)`, nom)
}

// List retourne les produits filtrés et triés.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ActiveOnly {
		conds = append(conds, "actif = TRUE")
	}
	if filter.CategorieID != "" {
		conds = append(conds, "categorie_id = "+arg(filter.CategorieID))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(nom ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if filter.MinPrix != nil {
		conds = append(conds, "prix >= "+arg(*filter.MinPrix))
	}
	if filter.MaxPrix != nil {
		conds = append(conds, "prix <= "+arg(*filter.MaxPrix))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY ` + orderBy(filter.Sort)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// orderBy mappe une clé de tri vers une clause SQL sûre (jamais d'entrée brute).
func orderBy(sort string) string {
	switch sort {
	case repository.SortPrixAsc:
		return "prix ASC"
	case repository.SortPrixDesc:
		return "prix DESC"
	case repository.SortNomAsc:
		return "nom ASC"
	case repository.SortNomDesc:
		return "nom DESC"
	default: // SortRecent
		return "date_ajout DESC"
	}
}

// Update met à jour un produit existant, images comprises.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET nom = $2, description = $3, prix = $4, categorie_id = $5,
			quantite_stock = $6, images = $7, image_principale = $8, date_modification = $9, actif = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Nom, product.Description, product.Prix, product.CategorieID,
		product.QuantiteStock, product.Images, product.ImagePrincipale,
		product.DateModification, product.Actif,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock écrase la quantité en stock.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantiteStock int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantite_stock = $2, date_modification = now() WHERE id = $1`,
		id, quantiteStock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete supprime définitivement un produit.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Nom, &p.Description, &p.Prix, &p.CategorieID, &p.QuantiteStock,
		&p.Images, &p.ImagePrincipale, &p.DateAjout, &p.DateModification, &p.Actif,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
