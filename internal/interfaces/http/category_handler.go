package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/application/usecase"
	"github.com/mbodji/boutique-api/internal/domain"
)

// CategoryHandler gère les requêtes HTTP du catalogue catégories.
type CategoryHandler struct {
	uc     *usecase.CategoryUseCase
	store  ImageSaver
	limits UploadLimits
}

// NewCategoryHandler construit le handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, store ImageSaver, limits UploadLimits) *CategoryHandler {
	// Une seule image par catégorie, quel que soit le plafond produit.
	limits.MaxFiles = 1
	return &CategoryHandler{uc: uc, store: store, limits: limits}
}

// List godoc
// @Summary      Lister les catégories actives (public)
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), true)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir une catégorie par ID (public, active ou non)
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "ID de la catégorie"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrCategoryNotFound {
			return notFound(c, "Catégorie non trouvée")
		}
		return internalError(c)
	}
	return c.JSON(dto.CategoryEnvelope{Success: true, Category: *out})
}

// Create godoc
// @Summary      Créer une catégorie (multipart, admin)
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        nom          formData  string  true   "Nom (unique)"
// @Param        description  formData  string  true   "Description"
// @Param        image        formData  file    false  "Image (5 Mo max)"
// @Success      201  {object}  dto.CategoryEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	in := dto.CreateCategoryRequest{
		Nom:         c.FormValue("nom"),
		Description: c.FormValue("description"),
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	paths, err := saveUploadedImages(c, "image", "category", h.limits, h.store)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	imagePath := ""
	if len(paths) > 0 {
		imagePath = paths[0]
	}
	out, err := h.uc.Create(c.UserContext(), in, imagePath)
	if err != nil {
		if err == domain.ErrDuplicate {
			return conflict(c, "Une catégorie avec ce nom existe déjà")
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryEnvelope{
		Success:  true,
		Message:  "Catégorie créée avec succès",
		Category: *out,
	})
}

// Update godoc
// @Summary      Mettre à jour une catégorie (multipart, admin)
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "ID de la catégorie"
// @Param        nom          formData  string  false  "Nouveau nom"
// @Param        description  formData  string  false  "Nouvelle description"
// @Param        actif        formData  bool    false  "Actif"
// @Param        image        formData  file    false  "Nouvelle image (remplace l'ancienne)"
// @Success      200  {object}  dto.CategoryEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	in := dto.UpdateCategoryRequest{
		Nom:         formStringPtr(c, "nom"),
		Description: formStringPtr(c, "description"),
		Actif:       formBoolPtr(c, "actif"),
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	paths, err := saveUploadedImages(c, "image", "category", h.limits, h.store)
	if err != nil {
		return uploadErrorResponse(c, err)
	}
	imagePath := ""
	if len(paths) > 0 {
		imagePath = paths[0]
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, imagePath)
	if err != nil {
		switch err {
		case domain.ErrCategoryNotFound:
			return notFound(c, "Catégorie non trouvée")
		case domain.ErrDuplicate:
			return conflict(c, "Une catégorie avec ce nom existe déjà")
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.CategoryEnvelope{
		Success:  true,
		Message:  "Catégorie mise à jour avec succès",
		Category: *out,
	})
}

// SoftDelete godoc
// @Summary      Désactiver une catégorie (admin), le fichier image est conservé
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la catégorie"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.UserContext(), c.Params("id")); err != nil {
		if err == domain.ErrCategoryNotFound {
			return notFound(c, "Catégorie non trouvée")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Catégorie désactivée avec succès"})
}

// HardDelete godoc
// @Summary      Supprimer définitivement une catégorie et son image (admin)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la catégorie"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/permanent [delete]
func (h *CategoryHandler) HardDelete(c *fiber.Ctx) error {
	if err := h.uc.HardDelete(c.UserContext(), c.Params("id")); err != nil {
		if err == domain.ErrCategoryNotFound {
			return notFound(c, "Catégorie non trouvée")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Catégorie supprimée définitivement"})
}
