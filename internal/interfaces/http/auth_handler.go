package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbodji/boutique-api/internal/application/auth"
	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/domain"
)

// AuthHandler gère inscription, connexion, profil et mot de passe.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construit le handler d'auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Créer un compte client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nom, prenom, email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return conflict(c, "Email déjà utilisé")
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Success: true,
		Message: "Compte créé",
		User:    *user,
	})
}

// Login godoc
// @Summary      Se connecter
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			return notFound(c, "Utilisateur non trouvé")
		case domain.ErrUnauthorized:
			return unauthorized(c, "UNAUTHORIZED", "Mot de passe incorrect")
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("FORBIDDEN", "Compte désactivé"))
		default:
			return internalError(c)
		}
	}
	return c.JSON(out)
}

// GetProfile godoc
// @Summary      Profil de l'utilisateur connecté
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return notFound(c, "Utilisateur non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.ProfileResponse{Success: true, User: *user})
}

// UpdateProfile godoc
// @Summary      Mettre à jour le profil (nom, prénom, téléphone, adresse)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "champs à modifier"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	user, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return notFound(c, "Utilisateur non trouvé")
		}
		return internalError(c)
	}
	return c.JSON(dto.ProfileResponse{Success: true, User: *user})
}

// VerifyPassword godoc
// @Summary      Vérifier le mot de passe courant
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPasswordRequest  true  "currentPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-password [post]
func (h *AuthHandler) VerifyPassword(c *fiber.Ctx) error {
	var in dto.VerifyPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	if err := h.uc.VerifyPassword(c.UserContext(), GetUserID(c), in.CurrentPassword); err != nil {
		if err == domain.ErrUnauthorized {
			return unauthorized(c, "UNAUTHORIZED", "Mot de passe incorrect")
		}
		return internalError(c)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Mot de passe vérifié"})
}

// ChangePassword godoc
// @Summary      Changer le mot de passe
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword (>= 6)"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corps invalide")
	}
	if err := validateBody(c, in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return badRequest(c, "VALIDATION", "Le nouveau mot de passe doit contenir au moins 6 caractères")
		case domain.ErrUnauthorized:
			return unauthorized(c, "UNAUTHORIZED", "Mot de passe incorrect")
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Mot de passe modifié avec succès"})
}
