package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbodji/boutique-api/internal/application/dto"
	"github.com/mbodji/boutique-api/internal/domain"
	"github.com/mbodji/boutique-api/internal/domain/entity"
	"github.com/mbodji/boutique-api/internal/domain/repository"
	"github.com/mbodji/boutique-api/pkg/jwt"
)

// JWTConfig paramètres de génération des tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase cas d'usage d'authentification : inscription, connexion, profil, mot de passe.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construit le cas d'usage d'auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crée un compte client : hash bcrypt puis persistance.
// Retourne ErrEmailAlreadyExists si l'email est déjà pris. La vérification
// applicative est un raccourci convivial ; l'index unique en base reste le
// vrai gardien (une création concurrente remonte ErrDuplicate).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Nom:          in.Nom,
		Prenom:       in.Prenom,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleClient,
		Telephone:    in.Telephone,
		Adresse:      in.Adresse,
		Actif:        true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login vérifie email/mot de passe et génère un token JWT de 7 jours.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Actif {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Message: "Connexion réussie",
		Token:   token,
		User:    *ToUserResponse(user),
	}, nil
}

// GetProfile retourne le profil de l'utilisateur connecté.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile met à jour nom/prénom/téléphone/adresse. Email et rôle restent figés.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Nom != nil {
		user.Nom = *in.Nom
	}
	if in.Prenom != nil {
		user.Prenom = *in.Prenom
	}
	if in.Telephone != nil {
		user.Telephone = *in.Telephone
	}
	if in.Adresse != nil {
		user.Adresse = *in.Adresse
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// VerifyPassword re-vérifie le mot de passe courant contre le hash stocké.
func (uc *AuthUseCase) VerifyPassword(ctx context.Context, userID, currentPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// ChangePassword vérifie le mot de passe courant puis remplace le hash.
// Les nouveaux secrets de moins de 6 caractères sont refusés.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 6 {
		return domain.ErrInvalidInput
	}
	if err := uc.VerifyPassword(ctx, userID, in.CurrentPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// BootstrapConfig identifiants du compte admin de démarrage (valeurs de déploiement).
type BootstrapConfig struct {
	Email    string
	Password string
	Nom      string
	Prenom   string
}

// EnsureDefaultAdmin crée un compte admin si aucun n'existe (idempotent).
// Retourne (false, nil) quand un admin existe déjà ou quand le mot de passe
// configuré est vide : on ne seed jamais un compte avec un secret vide.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, cfg BootstrapConfig) (bool, error) {
	exists, err := uc.userRepo.AdminExists(ctx)
	if err != nil {
		return false, err
	}
	if exists || cfg.Password == "" {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Nom:          cfg.Nom,
		Prenom:       cfg.Prenom,
		Email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Actif:        true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		// Deux instances qui démarrent en même temps : l'index unique tranche.
		if err == domain.ErrDuplicate {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ToUserResponse convertit l'entité en DTO. Le hash n'est jamais exposé.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Nom:       u.Nom,
		Prenom:    u.Prenom,
		Email:     u.Email,
		Role:      u.Role.String(),
		Telephone: u.Telephone,
		Adresse:   u.Adresse,
		Actif:     u.Actif,
		CreatedAt: u.CreatedAt,
	}
}
