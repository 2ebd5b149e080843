package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
	"github.com/mbodji/boutique-api/internal/testutil"
)

type productFixture struct {
	uc          *usecase.ProductUseCase
	repo        *testutil.ProductRepo
	store       *testutil.FileStore
	categorieID string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	repo := testutil.NewProductRepo()
	categoryRepo := testutil.NewCategoryRepo()
	store := testutil.NewFileStore()

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, store, zerolog.Nop())
	cat, err := categoryUC.Create(context.Background(), dto.CreateCategoryRequest{Nom: "Audio", Description: "Casques et enceintes"}, "")
	require.NoError(t, err)

	return &productFixture{
		uc:          usecase.NewProductUseCase(repo, categoryRepo, store, zerolog.Nop()),
		repo:        repo,
		store:       store,
		categorieID: cat.ID,
	}
}

func (f *productFixture) create(t *testing.T, nom string, prix string, stock int, images ...string) *dto.ProductResponse {
	t.Helper()
	p, err := f.uc.Create(context.Background(), dto.CreateProductRequest{
		Nom:           nom,
		Description:   "description de " + nom,
		Prix:          decimal.RequireFromString(prix),
		CategorieID:   f.categorieID,
		QuantiteStock: stock,
	}, images)
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Création
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_PremiereImagePrincipale(t *testing.T) {
	f := newProductFixture(t)

	p := f.create(t, "Casque Pro", "49.99", 10,
		"/uploads/product-1-aaaaaa.jpg", "/uploads/product-2-bbbbbb.jpg")

	assert.Equal(t, "/uploads/product-1-aaaaaa.jpg", p.ImagePrincipale)
	assert.Len(t, p.Images, 2)
	assert.Equal(t, "Audio", p.CategorieID.Nom, "la réponse embarque le nom de la catégorie")
	assert.True(t, p.Prix.Equal(decimal.RequireFromString("49.99")))
}

func TestProductCreate_SansImage_Sentinelle(t *testing.T) {
	f := newProductFixture(t)

	p := f.create(t, "Casque Pro", "49.99", 10)

	assert.Equal(t, entity.DefaultProductImage, p.ImagePrincipale)
	assert.Empty(t, p.Images)
}

func TestProductCreate_CategorieInconnue(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateProductRequest{
		Nom:         "Casque Pro",
		Description: "x",
		Prix:        decimal.RequireFromString("10"),
		CategorieID: "00000000-0000-0000-0000-0000000000ff",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductCreate_NomDejaPris(t *testing.T) {
	f := newProductFixture(t)
	f.create(t, "Casque Pro", "49.99", 10)

	_, err := f.uc.Create(context.Background(), dto.CreateProductRequest{
		Nom:         "Casque Pro",
		Description: "x",
		Prix:        decimal.RequireFromString("10"),
		CategorieID: f.categorieID,
	}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_PrixNegatif(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(context.Background(), dto.CreateProductRequest{
		Nom:         "Casque Pro",
		Description: "x",
		Prix:        decimal.RequireFromString("-1"),
		CategorieID: f.categorieID,
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mise à jour et images
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_ImagesToKeep_ReassigneLaPrincipale(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10,
		"/uploads/product-1-aaaaaa.jpg", "/uploads/product-2-bbbbbb.jpg")

	// On écarte l'image principale : la première restante la remplace.
	updated, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{
		ImagesToKeep:    []string{"/uploads/product-2-bbbbbb.jpg"},
		HasImagesToKeep: true,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/product-2-bbbbbb.jpg"}, updated.Images)
	assert.Equal(t, "/uploads/product-2-bbbbbb.jpg", updated.ImagePrincipale)
	assert.True(t, f.store.HasDeleted("/uploads/product-1-aaaaaa.jpg"), "l'image écartée est supprimée")
	assert.False(t, f.store.HasDeleted("/uploads/product-2-bbbbbb.jpg"))
}

func TestProductUpdate_ImagesToKeepVide_ToutPurge(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10, "/uploads/product-1-aaaaaa.jpg")

	updated, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{
		ImagesToKeep:    []string{},
		HasImagesToKeep: true,
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, updated.Images)
	assert.Equal(t, entity.DefaultProductImage, updated.ImagePrincipale, "jamais d'image principale vide")
	assert.True(t, f.store.HasDeleted("/uploads/product-1-aaaaaa.jpg"))
}

func TestProductUpdate_SansImagesToKeep_AjouteSeulement(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10, "/uploads/product-1-aaaaaa.jpg")

	// Liste absente : les images existantes restent, les nouvelles s'ajoutent.
	updated, err := f.uc.Update(ctx, p.ID, dto.UpdateProductRequest{},
		[]string{"/uploads/product-3-cccccc.jpg"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/product-1-aaaaaa.jpg", "/uploads/product-3-cccccc.jpg"}, updated.Images)
	assert.Equal(t, "/uploads/product-1-aaaaaa.jpg", updated.ImagePrincipale)
	assert.Empty(t, f.store.Deleted)
}

func TestProductUpdate_CategorieInconnue(t *testing.T) {
	f := newProductFixture(t)

	p := f.create(t, "Casque Pro", "49.99", 10)

	inconnue := "00000000-0000-0000-0000-0000000000ff"
	_, err := f.uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{CategorieID: &inconnue}, nil)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductUpdate_RenommageVersNomPris(t *testing.T) {
	f := newProductFixture(t)

	f.create(t, "Casque Pro", "49.99", 10)
	autre := f.create(t, "Enceinte Mini", "29.99", 5)

	nom := "Casque Pro"
	_, err := f.uc.Update(context.Background(), autre.ID, dto.UpdateProductRequest{Nom: &nom}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cycle de vie
// ──────────────────────────────────────────────────────────────────────────────

func TestProductSoftDelete_PurgeLesImages(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10,
		"/uploads/product-1-aaaaaa.jpg", "/uploads/product-2-bbbbbb.jpg")

	require.NoError(t, f.uc.SoftDelete(ctx, p.ID))

	// Les fichiers sont supprimés, l'enregistrement survit avec la sentinelle.
	assert.True(t, f.store.HasDeleted("/uploads/product-1-aaaaaa.jpg"))
	assert.True(t, f.store.HasDeleted("/uploads/product-2-bbbbbb.jpg"))

	got, err := f.uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Actif)
	assert.Empty(t, got.Images)
	assert.Equal(t, entity.DefaultProductImage, got.ImagePrincipale)

	// Exclu du listing public, toujours lisible par id.
	list, err := f.uc.List(ctx, repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
}

func TestProductReactivate(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10)
	require.NoError(t, f.uc.SoftDelete(ctx, p.ID))
	require.NoError(t, f.uc.Reactivate(ctx, p.ID))

	list, err := f.uc.List(ctx, repository.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
}

func TestProductHardDelete(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10, "/uploads/product-1-aaaaaa.jpg")

	require.NoError(t, f.uc.HardDelete(ctx, p.ID))

	assert.True(t, f.store.HasDeleted("/uploads/product-1-aaaaaa.jpg"))
	_, err := f.uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdateStock(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p := f.create(t, "Casque Pro", "49.99", 10)

	updated, err := f.uc.UpdateStock(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.QuantiteStock, "un stock à zéro est valide")

	_, err = f.uc.UpdateStock(ctx, p.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listing filtré
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_FourchetteDePrixEtTri(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	f.create(t, "Casque Pro", "49.99", 10)
	f.create(t, "Enceinte Mini", "29.99", 5)
	f.create(t, "Ampli Studio", "199.00", 2)

	min := decimal.RequireFromString("20")
	max := decimal.RequireFromString("60")
	list, err := f.uc.List(ctx, repository.ProductFilter{
		MinPrix:    &min,
		MaxPrix:    &max,
		Sort:       repository.SortPrixAsc,
		ActiveOnly: true,
	})
	require.NoError(t, err)

	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Enceinte Mini", list.Products[0].Nom)
	assert.Equal(t, "Casque Pro", list.Products[1].Nom)
}

func TestProductList_RechercheTexte(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	f.create(t, "Casque Pro", "49.99", 10)
	f.create(t, "Enceinte Mini", "29.99", 5)

	list, err := f.uc.List(ctx, repository.ProductFilter{Search: "casque", ActiveOnly: true})
	require.NoError(t, err)

	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Casque Pro", list.Products[0].Nom)
}
