package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbodji/boutique-api/internal/application/auth"
	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/infrastructure/storage"
	apphttp "github.com/mbodji/boutique-api/internal/interfaces/http"
	"github.com/mbodji/boutique-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Montage de l'application complète sur dépôts mémoire
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app        *fiber.App
	adminToken string
}

// newAPIFixture assemble l'app comme le fait main : usecases, routeur, seed
// admin. Seule la persistance est remplacée par les dépôts mémoire.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	userRepo := testutil.NewUserRepo()
	categoryRepo := testutil.NewCategoryRepo()
	productRepo := testutil.NewProductRepo()

	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:   testJWTSecret,
		ExpHours: 168,
		Issuer:   testIssuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, store, zerolog.Nop())
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, store, zerolog.Nop())

	created, err := authUC.EnsureDefaultAdmin(context.Background(), auth.BootstrapConfig{
		Email:    "admin@boutique.local",
		Password: "admin-secret",
		Nom:      "Admin",
		Prenom:   "Boutique",
	})
	require.NoError(t, err)
	require.True(t, created)

	limits := apphttp.UploadLimits{
		MaxFileSize: 5 * 1024 * 1024,
		MaxFiles:    10,
	}
	// Même plafond de corps qu'en production : le framework doit laisser passer
	// un fichier au-dessus de la limite unitaire pour que la validation typée
	// réponde, pas lui.
	app := fiber.New(fiber.Config{
		BodyLimit: int(limits.MaxFileSize)*limits.MaxFiles + 1024*1024,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		UserRepo:   userRepo,
		Store:      store,
		Limits:     limits,
		JWTSecret:  testJWTSecret,
	})

	f := &apiFixture{app: app}
	f.adminToken = f.login(t, "admin@boutique.local", "admin-secret")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) doJSON(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return f.do(t, method, path, token, bytes.NewReader(raw), fiber.MIMEApplicationJSON)
}

// doForm envoie une requête multipart sans fichier (champs texte seulement).
func (f *apiFixture) doForm(t *testing.T, method, path, token string, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return f.do(t, method, path, token, &buf, w.FormDataContentType())
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := f.doJSON(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (f *apiFixture) createCategory(t *testing.T, nom string) dto.CategoryResponse {
	t.Helper()
	resp := f.doForm(t, http.MethodPost, "/api/categories", f.adminToken, map[string]string{
		"nom":         nom,
		"description": "catégorie " + nom,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CategoryEnvelope
	decode(t, resp, &out)
	return out.Category
}

func (f *apiFixture) createProduct(t *testing.T, nom, prix string, stock, categorieID string) dto.ProductResponse {
	t.Helper()
	resp := f.doForm(t, http.MethodPost, "/api/products", f.adminToken, map[string]string{
		"nom":            nom,
		"description":    "produit " + nom,
		"prix":           prix,
		"quantite_stock": stock,
		"categorie_id":   categorieID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProductEnvelope
	decode(t, resp, &out)
	return out.Product
}

// ──────────────────────────────────────────────────────────────────────────────
// Parcours boutique complet
// ──────────────────────────────────────────────────────────────────────────────

// L'admin crée une catégorie et un produit ; le public voit le produit avec le
// nom de sa catégorie ; le stock tombe à zéro ; la désactivation sort le
// produit du listing public sans le rendre inaccessible par id.
func TestParcoursBoutique(t *testing.T) {
	f := newAPIFixture(t)

	cat := f.createCategory(t, "Audio")
	assert.Equal(t, "audio", cat.Slug)

	p := f.createProduct(t, "Casque Pro", "49.99", "10", cat.ID)
	assert.Equal(t, 10, p.QuantiteStock)

	// Listing public : le produit embarque {id, nom} de sa catégorie.
	resp := f.do(t, http.MethodGet, "/api/products", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Audio", list.Products[0].CategorieID.Nom)
	assert.Equal(t, cat.ID, list.Products[0].CategorieID.ID)

	// Stock à zéro : valide, le produit reste listé.
	resp = f.doJSON(t, http.MethodPut, "/api/products/"+p.ID+"/stock", f.adminToken,
		dto.UpdateStockRequest{QuantiteStock: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env dto.ProductEnvelope
	decode(t, resp, &env)
	assert.Equal(t, 0, env.Product.QuantiteStock)

	// Désactivation : exclu du listing public, lisible par id avec actif:false.
	resp = f.do(t, http.MethodDelete, "/api/products/"+p.ID, f.adminToken, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/products", "", nil, "")
	decode(t, resp, &list)
	assert.Equal(t, 0, list.Count)

	resp = f.do(t, http.MethodGet, "/api/products/"+p.ID, "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &env)
	assert.False(t, env.Product.Actif)

	// Réactivation : le produit revient dans le listing.
	resp = f.do(t, http.MethodPut, "/api/products/"+p.ID+"/reactivate", f.adminToken, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/products", "", nil, "")
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Count)
}

func TestProduits_FiltrePrixEtTri(t *testing.T) {
	f := newAPIFixture(t)
	cat := f.createCategory(t, "Audio")

	f.createProduct(t, "Casque Pro", "49.99", "10", cat.ID)
	f.createProduct(t, "Enceinte Mini", "29.99", "5", cat.ID)
	f.createProduct(t, "Ampli Studio", "199.00", "2", cat.ID)

	resp := f.do(t, http.MethodGet, "/api/products?minPrix=20&maxPrix=60&sort=prix_asc", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)

	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Enceinte Mini", list.Products[0].Nom)
	assert.Equal(t, "Casque Pro", list.Products[1].Nom)

	// Borne invalide : 400.
	resp = f.do(t, http.MethodGet, "/api/products?minPrix=abc", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorisations et conflits
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_MutationsReserveesAdmin(t *testing.T) {
	f := newAPIFixture(t)

	// Un client authentifié ne peut pas créer de catégorie.
	resp := f.doJSON(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Nom:      "Diallo",
		Prenom:   "Awa",
		Email:    "awa@example.com",
		Password: "motdepasse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	clientToken := f.login(t, "awa@example.com", "motdepasse")

	resp = f.doForm(t, http.MethodPost, "/api/categories", clientToken, map[string]string{
		"nom": "Audio", "description": "x",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Sans token : 401.
	resp = f.doForm(t, http.MethodPost, "/api/categories", "", map[string]string{
		"nom": "Audio", "description": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// La lecture reste publique.
	resp = f.do(t, http.MethodGet, "/api/categories", "", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCategories_NomDejaPris_409(t *testing.T) {
	f := newAPIFixture(t)
	f.createCategory(t, "Audio")

	resp := f.doForm(t, http.MethodPost, "/api/categories", f.adminToken, map[string]string{
		"nom": "Audio", "description": "doublon",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE")
}

func TestProduits_CategorieInexistante_400(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.doForm(t, http.MethodPost, "/api/products", f.adminToken, map[string]string{
		"nom":          "Casque Pro",
		"description":  "x",
		"prix":         "49.99",
		"categorie_id": "00000000-0000-0000-0000-0000000000ff",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_EmailDejaPris_409(t *testing.T) {
	f := newAPIFixture(t)

	in := dto.RegisterRequest{Nom: "Diallo", Prenom: "Awa", Email: "awa@example.com", Password: "motdepasse"}
	resp := f.doJSON(t, http.MethodPost, "/api/auth/register", "", in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.doJSON(t, http.MethodPost, "/api/auth/register", "", in)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProfile_LectureEtMiseAJour(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Nom: "Diallo", Prenom: "Awa", Email: "awa@example.com", Password: "motdepasse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	token := f.login(t, "awa@example.com", "motdepasse")

	resp = f.do(t, http.MethodGet, "/api/auth/profile", token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile dto.ProfileResponse
	decode(t, resp, &profile)
	assert.Equal(t, "awa@example.com", profile.User.Email)
	assert.Equal(t, "client", profile.User.Role)

	resp = f.doJSON(t, http.MethodPut, "/api/auth/profile", token, map[string]string{
		"telephone": "+221771234567",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &profile)
	assert.Equal(t, "+221771234567", profile.User.Telephone)
}

func TestProduits_RechercheTexte(t *testing.T) {
	f := newAPIFixture(t)
	cat := f.createCategory(t, "Audio")
	f.createProduct(t, "Casque Pro", "49.99", "10", cat.ID)
	f.createProduct(t, "Enceinte Mini", "29.99", "5", cat.ID)

	resp := f.do(t, http.MethodGet, "/api/products?search=casque", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)

	require.Equal(t, 1, list.Count)
	assert.True(t, strings.Contains(list.Products[0].Nom, "Casque"))
}
