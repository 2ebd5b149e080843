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

// ProductUseCase cas d'usage CRUD + cycle de vie des images pour les produits.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	store        FileStore
	log          zerolog.Logger
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, store FileStore, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, store: store, log: log}
}

// Create crée un produit avec 0..N images uploadées. La première image devient
// l'image principale ; sans image, la sentinelle. La catégorie doit exister.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, imagePaths []string) (*dto.ProductResponse, error) {
	if in.Prix.IsNegative() || in.QuantiteStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategorieID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	existing, err := uc.repo.GetByNom(ctx, in.Nom)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	images := imagePaths
	principale := entity.DefaultProductImage
	if len(images) > 0 {
		principale = images[0]
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Nom:              in.Nom,
		Description:      in.Description,
		Prix:             in.Prix,
		CategorieID:      in.CategorieID,
		QuantiteStock:    in.QuantiteStock,
		Images:           images,
		ImagePrincipale:  principale,
		DateAjout:        now,
		DateModification: now,
		Actif:            true,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product)
}

// List retourne les produits filtrés. Le listing public est restreint aux actifs.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	noms, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, noms[p.CategorieID]))
	}
	return &dto.ProductListResponse{Success: true, Count: len(items), Products: items}, nil
}

// GetByID retourne un produit, actif ou non.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.toResponse(ctx, product)
}

// Update met à jour un produit. Si ImagesToKeep est fourni, les images
// existantes absentes de la liste sont supprimées du stockage ; les nouvelles
// images sont ajoutées à la suite ; l'image principale est réassignée à la
// première image restante si l'actuelle disparaît, jamais à vide.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, newImagePaths []string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.CategorieID != nil && *in.CategorieID != product.CategorieID {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategorieID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrCategoryNotFound
		}
		product.CategorieID = *in.CategorieID
	}
	if in.Nom != nil && *in.Nom != product.Nom {
		existing, err := uc.repo.GetByNom(ctx, *in.Nom)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Nom = *in.Nom
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Prix != nil {
		if in.Prix.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Prix = *in.Prix
	}
	if in.QuantiteStock != nil {
		if *in.QuantiteStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.QuantiteStock = *in.QuantiteStock
	}
	if in.Actif != nil {
		product.Actif = *in.Actif
	}

	var discarded []string
	if in.HasImagesToKeep {
		keep := make(map[string]bool, len(in.ImagesToKeep))
		for _, img := range in.ImagesToKeep {
			keep[img] = true
		}
		var kept []string
		for _, img := range product.Images {
			if keep[img] {
				kept = append(kept, img)
				continue
			}
			discarded = append(discarded, img)
		}
		product.Images = kept
	}
	product.Images = append(product.Images, newImagePaths...)
	product.NormalizeMainImage()

	product.DateModification = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	// L'enregistrement d'abord, les fichiers ensuite : un échec ici laisse au
	// pire un fichier orphelin, jamais un enregistrement pointant dans le vide.
	for _, img := range discarded {
		uc.deleteImage(img)
	}
	return uc.toResponse(ctx, product)
}

// SoftDelete désactive le produit et supprime ses fichiers image non-sentinelles.
// La perte des médias est irréversible même si l'enregistrement reste récupérable ;
// les chemins sont purgés pour que l'image principale retombe sur la sentinelle.
func (uc *ProductUseCase) SoftDelete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	images := product.Images
	product.Images = nil
	product.ImagePrincipale = entity.DefaultProductImage
	product.Actif = false
	product.DateModification = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return err
	}
	for _, img := range images {
		uc.deleteImage(img)
	}
	return nil
}

// Reactivate réactive un produit désactivé.
func (uc *ProductUseCase) Reactivate(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	product.Actif = true
	product.DateModification = time.Now()
	return uc.repo.Update(ctx, product)
}

// HardDelete supprime les fichiers image puis l'enregistrement, définitivement.
func (uc *ProductUseCase) HardDelete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	for _, img := range product.Images {
		uc.deleteImage(img)
	}
	return uc.repo.Delete(ctx, id)
}

// UpdateStock écrase la quantité en stock (>= 0).
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, quantiteStock int) (*dto.ProductResponse, error) {
	if quantiteStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.repo.UpdateStock(ctx, id, quantiteStock); err != nil {
		return nil, err
	}
	product.QuantiteStock = quantiteStock
	product.DateModification = time.Now()
	return uc.toResponse(ctx, product)
}

// deleteImage supprime un fichier non-sentinelle ; l'échec laisse au pire un
// fichier orphelin et n'interrompt jamais la mutation de l'enregistrement.
func (uc *ProductUseCase) deleteImage(path string) {
	if entity.IsDefaultImage(path) {
		return
	}
	if err := uc.store.Delete(path); err != nil {
		uc.log.Warn().Err(err).Str("image", path).Msg("suppression de l'image")
	}
}

// categoryNames retourne l'index id -> nom pour peupler les réponses.
func (uc *ProductUseCase) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := uc.categoryRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	noms := make(map[string]string, len(categories))
	for _, c := range categories {
		noms[c.ID] = c.Nom
	}
	return noms, nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	nom := ""
	if category, err := uc.categoryRepo.GetByID(ctx, p.CategorieID); err != nil {
		return nil, err
	} else if category != nil {
		nom = category.Nom
	}
	return toProductResponse(p, nom), nil
}

func toProductResponse(p *entity.Product, categorieNom string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &dto.ProductResponse{
		ID:               p.ID,
		Nom:              p.Nom,
		Description:      p.Description,
		Prix:             p.Prix,
		CategorieID:      dto.CategoryRef{ID: p.CategorieID, Nom: categorieNom},
		QuantiteStock:    p.QuantiteStock,
		Images:           images,
		ImagePrincipale:  p.ImagePrincipale,
		DateAjout:        p.DateAjout,
		DateModification: p.DateModification,
		Actif:            p.Actif,
	}
}
