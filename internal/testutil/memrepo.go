// Package testutil fournit des implémentations en mémoire des ports de
// persistance, pour tester les cas d'usage et les handlers HTTP sans base.
// Les entités sont copiées à l'entrée et à la sortie pour éviter tout
// aliasing entre le test et le « stockage ».
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

// UserRepo implémentation mémoire de repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

// NewUserRepo construit un dépôt utilisateurs vide.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrDuplicate
		}
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepo) AdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == entity.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catégories
// ──────────────────────────────────────────────────────────────────────────────

// CategoryRepo implémentation mémoire de repository.CategoryRepository.
type CategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.Category
}

// NewCategoryRepo construit un dépôt catégories vide.
func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Nom, category.Nom) || c.Slug == category.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CategoryRepo) GetByNom(_ context.Context, nom string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Nom, nom) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.categories {
		if activeOnly && !c.Actif {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateAjout.After(out[j].DateAjout)
	})
	return out, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	for id, c := range r.categories {
		if id != category.ID && strings.EqualFold(c.Nom, category.Nom) {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Produits
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo implémentation mémoire de repository.ProductRepository.
// List applique les mêmes critères que l'adaptateur SQL : filtres actif,
// catégorie, recherche texte, fourchette de prix, puis tri.
type ProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

// NewProductRepo construit un dépôt produits vide.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.EqualFold(p.Nom, product.Nom) {
			return domain.ErrDuplicate
		}
	}
	cp := cloneProduct(product)
	r.products[product.ID] = cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *ProductRepo) GetByNom(_ context.Context, nom string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.EqualFold(p.Nom, nom) {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if filter.ActiveOnly && !p.Actif {
			continue
		}
		if filter.CategorieID != "" && p.CategorieID != filter.CategorieID {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Nom), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if filter.MinPrix != nil && p.Prix.LessThan(*filter.MinPrix) {
			continue
		}
		if filter.MaxPrix != nil && p.Prix.GreaterThan(*filter.MaxPrix) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sortProducts(out, filter.Sort)
	return out, nil
}

func sortProducts(list []*entity.Product, key string) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch key {
		case repository.SortPrixAsc:
			return a.Prix.LessThan(b.Prix)
		case repository.SortPrixDesc:
			return b.Prix.LessThan(a.Prix)
		case repository.SortNomAsc:
			return strings.ToLower(a.Nom) < strings.ToLower(b.Nom)
		case repository.SortNomDesc:
			return strings.ToLower(b.Nom) < strings.ToLower(a.Nom)
		default:
			return a.DateAjout.After(b.DateAjout)
		}
	})
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	for id, p := range r.products {
		if id != product.ID && strings.EqualFold(p.Nom, product.Nom) {
			return domain.ErrDuplicate
		}
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, quantiteStock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.QuantiteStock = quantiteStock
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// Stockage de fichiers
// ──────────────────────────────────────────────────────────────────────────────

// FileStore enregistre les suppressions demandées, sans toucher au disque.
type FileStore struct {
	mu      sync.Mutex
	Deleted []string
}

// NewFileStore construit un store de suppression factice.
func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, path)
	return nil
}

// HasDeleted indique si la suppression du chemin a été demandée.
func (s *FileStore) HasDeleted(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Deleted {
		if p == path {
			return true
		}
	}
	return false
}
