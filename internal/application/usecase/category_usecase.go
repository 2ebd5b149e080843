package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

// CategoryUseCase cas d'usage CRUD + cycle de vie image pour les catégories.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	store FileStore
	log   zerolog.Logger
}

// NewCategoryUseCase construit le cas d'usage.
func NewCategoryUseCase(repo repository.CategoryRepository, store FileStore, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, store: store, log: log}
}

// Create crée une catégorie. Le slug est dérivé du nom ; sans image uploadée,
// la sentinelle par défaut est utilisée.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest, imagePath string) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.GetByNom(ctx, in.Nom)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	image := entity.DefaultCategoryImage
	if imagePath != "" {
		image = imagePath
	}
	now := time.Now()
	category := &entity.Category{
		ID:               uuid.New().String(),
		Nom:              in.Nom,
		Description:      in.Description,
		Slug:             domain.Slugify(in.Nom),
		Image:            image,
		DateAjout:        now,
		DateModification: now,
		Actif:            true,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List retourne les catégories, les plus récentes d'abord.
func (uc *CategoryUseCase) List(ctx context.Context, activeOnly bool) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Success: true, Count: len(items), Categories: items}, nil
}

// GetByID retourne une catégorie, active ou non.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return toCategoryResponse(category), nil
}

// Update met à jour une catégorie. Le slug n'est recalculé que si le nom change ;
// une nouvelle image remplace l'ancienne (fichier non-sentinelle supprimé).
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest, imagePath string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if in.Nom != nil && *in.Nom != category.Nom {
		existing, err := uc.repo.GetByNom(ctx, *in.Nom)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Nom = *in.Nom
		category.Slug = domain.Slugify(*in.Nom)
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Actif != nil {
		category.Actif = *in.Actif
	}
	oldImage := ""
	if imagePath != "" {
		if category.HasCustomImage() {
			oldImage = category.Image
		}
		category.Image = imagePath
	}
	category.DateModification = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	// L'ancienne image n'est supprimée qu'une fois l'enregistrement à jour :
	// fichier orphelin possible, jamais d'enregistrement orphelin.
	if oldImage != "" {
		if err := uc.store.Delete(oldImage); err != nil {
			uc.log.Warn().Err(err).Str("image", oldImage).Msg("suppression de l'ancienne image")
		}
	}
	return toCategoryResponse(category), nil
}

// SoftDelete désactive la catégorie sans toucher au fichier image.
func (uc *CategoryUseCase) SoftDelete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	category.Actif = false
	category.DateModification = time.Now()
	return uc.repo.Update(ctx, category)
}

// HardDelete supprime le fichier image (non-sentinelle) puis l'enregistrement.
func (uc *CategoryUseCase) HardDelete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	if category.HasCustomImage() {
		if err := uc.store.Delete(category.Image); err != nil {
			uc.log.Warn().Err(err).Str("image", category.Image).Msg("suppression de l'image")
		}
	}
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:               c.ID,
		Nom:              c.Nom,
		Description:      c.Description,
		Slug:             c.Slug,
		Image:            c.Image,
		DateAjout:        c.DateAjout,
		DateModification: c.DateModification,
		Actif:            c.Actif,
	}
}
