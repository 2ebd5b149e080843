package http

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/repository"
)

// ProductHandler gère les requêtes HTTP du catalogue produits.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	store  ImageSaver
	limits UploadLimits
}

// NewProductHandler construit le handler.
func NewProductHandler(uc *usecase.ProductUseCase, store ImageSaver, limits UploadLimits) *ProductHandler {
	return &ProductHandler{uc: uc, store: store, limits: limits}
}

// List godoc
// @Summary      Lister les produits actifs (public, filtrable)
// @Tags         products
// @Produce      json
// @Param        categorie  query  string  false  "ID de catégorie"
// @Param        search     query  string  false  "Recherche texte (nom/description)"
// @Param        minPrix    query  number  false  "Prix minimum"
// @Param        maxPrix    query  number  false  "Prix maximum"
// @Param        sort       query  string  false  "prix_asc | prix_desc | nom_asc | nom_desc | recent"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Search:     c.Query("search"),
		Sort:       c.Query("sort", repository.SortRecent),
		ActiveOnly: true, // le listing public ne montre jamais les produits désactivés
	}
	if categorie := c.Query("categorie"); categorie != "" {
		if _, err := uuid.Parse(categorie); err != nil {
			return badRequest(c, "VALIDATION", "categorie invalide")
		}
		filter.CategorieID = categorie
	}
	if raw := c.Query("minPrix"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "minPrix invalide")
		}
		filter.MinPrix = &min
	}
	if raw := c.Query("maxPrix"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "maxPrix invalide")
		}
		filter.MaxPrix = &max
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir un produit par ID (public, actif ou non)
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrProductNotFound {
			return notFound(c, "Produit non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.ProductEnvelope{Success: true, Product: *out})
}

// Create godoc
// @Summary      Créer un produit avec jusqu'à 10 images (multipart, admin)
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        nom             formData  string  true   "Nom (unique)"
// @Param        description     formData  string  true   "Description"
// @Param        prix            formData  number  true   "Prix (>= 0)"
// @Param        categorie_id    formData  string  true   "ID de catégorie existante"
// @Param        quantite_stock  formData  int     false  "Stock initial (>= 0)"
// @Param        images          formData  file    false  "Images (10 max, 5 Mo chacune)"
// @Success      201  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateProductRequest{
		Nom:         c.FormValue("nom"),
		Description: c.FormValue("description"),
		CategorieID: c.FormValue("categorie_id"),
	}
	prix, err := decimal.NewFromString(c.FormValue("prix"))
	if err != nil {
		return badRequest(c, "VALIDATION", "prix invalide")
	}
	in.Prix = prix
	if raw := c.FormValue("quantite_stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "quantite_stock invalide")
		}
		in.QuantiteStock = n
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	if _, err := uuid.Parse(in.CategorieID); err != nil {
		return badRequest(c, "VALIDATION", "Catégorie non trouvée")
	}
	paths, err := saveUploadedImages(c, "images", "product", h.limits, h.store)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, paths)
	if err != nil {
		switch err {
		case domain.ErrCategoryNotFound:
			return badRequest(c, "VALIDATION", "Catégorie non trouvée")
		case domain.ErrDuplicate:
			return conflict(c, "Un produit avec ce nom existe déjà")
		case domain.ErrInvalidInput:
			return badRequest(c, "VALIDATION", "prix et quantite_stock doivent être positifs")
		default:
			return internalError(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductEnvelope{
		Success: true,
		Message: "Produit créé avec succès",
		Product: *out,
	})
}

// Update godoc
// @Summary      Mettre à jour un produit (multipart, admin)
// @Description  imagesToKeep (tableau JSON) : les images existantes absentes de
// @Description  la liste sont supprimées du stockage ; les nouveaux uploads
// @Description  sont ajoutés à la suite. L'image principale est réassignée à la
// @Description  première image restante si l'actuelle disparaît.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      string  true   "ID du produit"
// @Param        imagesToKeep  formData  string  false  "Tableau JSON des chemins à conserver"
// @Param        images        formData  file    false  "Nouvelles images"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in := dto.UpdateProductRequest{
		Nom:         formStringPtr(c, "nom"),
		Description: formStringPtr(c, "description"),
		Actif:       formBoolPtr(c, "actif"),
	}
	if raw := formStringPtr(c, "prix"); raw != nil {
		prix, err := decimal.NewFromString(*raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "prix invalide")
		}
		in.Prix = &prix
	}
	if raw := formStringPtr(c, "quantite_stock"); raw != nil {
		n, err := strconv.Atoi(*raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "quantite_stock invalide")
		}
		in.QuantiteStock = &n
	}
	if raw := formStringPtr(c, "categorie_id"); raw != nil {
		if _, err := uuid.Parse(*raw); err != nil {
			return badRequest(c, "VALIDATION", "Catégorie non trouvée")
		}
		in.CategorieID = raw
	}
	if raw := formStringPtr(c, "imagesToKeep"); raw != nil {
		var keep []string
		if err := json.Unmarshal([]byte(*raw), &keep); err != nil {
			return badRequest(c, "VALIDATION", "imagesToKeep doit être un tableau JSON")
		}
		in.ImagesToKeep = keep
		in.HasImagesToKeep = true
	}
	newPaths, err := saveUploadedImages(c, "images", "product", h.limits, h.store)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, newPaths)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			return notFound(c, "Produit non trouvé")
		case domain.ErrCategoryNotFound:
			return badRequest(c, "VALIDATION", "Catégorie non trouvée")
		case domain.ErrDuplicate:
			return conflict(c, "Un produit avec ce nom existe déjà")
		case domain.ErrInvalidInput:
			return badRequest(c, "VALIDATION", "prix et quantite_stock doivent être positifs")
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.ProductEnvelope{
		Success: true,
		Message: "Produit mis à jour avec succès",
		Product: *out,
	})
}

// SoftDelete godoc
// @Summary      Désactiver un produit et supprimer ses images (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id")); err != nil {
		if err == domain.ErrProductNotFound {
			return notFound(c, "Produit non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produit désactivé avec succès"})
}

// Reactivate godoc
// @Summary      Réactiver un produit désactivé (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reactivate [put]
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.uc.Reactivate(c.UserContext(), c.Params("id")); err != nil {
		if err == domain.ErrProductNotFound {
			return notFound(c, "Produit non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produit réactivé avec succès"})
}

// HardDelete godoc
// @Summary      Supprimer définitivement un produit et ses images (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID du produit"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/permanent [delete]
func (h *ProductHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		if err == domain.ErrProductNotFound {
			return notFound(c, "Produit non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Produit supprimé définitivement"})
}

// UpdateStock godoc
// @Summary      Écraser la quantité en stock (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID du produit"
// @Param        body  body  dto.UpdateStockRequest  true  "quantite_stock (>= 0)"
// @Success      200  {object}  dto.ProductEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStock(c.UserContext(), c.Params("id"), in.QuantiteStock)
	if err != nil {
		switch err {
		case domain.ErrProductNotFound:
			return notFound(c, "Produit non trouvé")
		case domain.ErrInvalidInput:
			return badRequest(c, "VALIDATION", "quantite_stock doit être positif")
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.ProductEnvelope{
		Success: true,
		Message: "Stock mis à jour avec succès",
		Product: *out,
	})
}
