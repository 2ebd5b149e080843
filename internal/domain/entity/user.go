package entity

import (
	"time"

	"github.com/mbodji/boutique-api/internal/domain"
)

// Role énumération fermée des rôles utilisateur.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// ParseRole convertit une chaîne en Role. Seules les deux valeurs connues sont acceptées.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// String implémente fmt.Stringer.
func (r Role) String() string { return string(r) }

// User représente un compte (client ou admin).
type User struct {
	ID           string
	Nom          string
	Prenom       string
	Email        string // unique, en minuscules
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Role         Role
	Telephone    string
	Adresse      string // utilisé seulement côté client
	Actif        bool
	CreatedAt    time.Time
}
