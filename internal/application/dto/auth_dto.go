package dto

import "time"

// RegisterRequest entrée d'inscription. Le rôle est toujours client à l'inscription.
type RegisterRequest struct {
	Nom       string `json:"nom" validate:"required,min=1,max=100"`
	Prenom    string `json:"prenom" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Telephone string `json:"telephone" validate:"omitempty,max=30"`
	Adresse   string `json:"adresse" validate:"omitempty,max=300"`
}

// LoginRequest entrée de connexion.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest mise à jour du profil. Email et rôle ne sont jamais modifiables ici.
type UpdateProfileRequest struct {
	Nom       *string `json:"nom" validate:"omitempty,min=1,max=100"`
	Prenom    *string `json:"prenom" validate:"omitempty,min=1,max=100"`
	Telephone *string `json:"telephone" validate:"omitempty,max=30"`
	Adresse   *string `json:"adresse" validate:"omitempty,max=300"`
}

// VerifyPasswordRequest re-vérification du mot de passe courant.
type VerifyPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

// ChangePasswordRequest changement de mot de passe.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse sortie utilisateur. Le hash du mot de passe n'est jamais sérialisé.
type UserResponse struct {
	ID        string    `json:"id"`
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Telephone string    `json:"telephone,omitempty"`
	Adresse   string    `json:"adresse,omitempty"`
	Actif     bool      `json:"actif"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse sortie d'inscription.
type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse sortie de connexion : token Bearer + utilisateur.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ProfileResponse sortie de consultation/mise à jour du profil.
type ProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
