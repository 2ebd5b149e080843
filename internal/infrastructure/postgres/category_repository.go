package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implémentation du port CategoryRepository sur PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construit l'adaptateur de persistance des catégories.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, nom, description, slug, image, date_ajout, date_modification, actif`

// Create persiste une nouvelle catégorie. Nom et slug sont couverts par des
// index uniques (23505 -> ErrDuplicate).
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.Nom, category.Description, category.Slug,
		category.Image, category.DateAjout, category.DateModification, category.Actif,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID retourne une catégorie par ID, nil si absente.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByNom retourne une catégorie par nom (insensible à la casse), nil si absente.
func (r *CategoryRepo) GetByNom(ctx context.Context, nom string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE LOWER(nom) = LOWER($1)`, nom)
}

// List retourne les catégories, les plus récentes d'abord.
func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE actif = TRUE`
	}
	query += ` ORDER BY date_ajout DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Nom, &c.Description, &c.Slug, &c.Image,
			&c.DateAjout, &c.DateModification, &c.Actif); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update met à jour une catégorie existante.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET nom = $2, description = $3, slug = $4, image = $5, date_modification = $6, actif = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.Nom, category.Description, category.Slug,
		category.Image, category.DateModification, category.Actif,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete supprime définitivement une catégorie.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Nom, &c.Description, &c.Slug, &c.Image,
		&c.DateAjout, &c.DateModification, &c.Actif,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
