package dto

import "time"

// CreateCategoryRequest entrée de création de catégorie (champs texte du multipart).
type CreateCategoryRequest struct {
	Nom         string `form:"nom" validate:"required,min=1,max=100"`
	Description string `form:"description" validate:"required,max=500"`
}

// UpdateCategoryRequest entrée de mise à jour. Les champs absents sont laissés intacts.
type UpdateCategoryRequest struct {
	Nom         *string `form:"nom" validate:"omitempty,min=1,max=100"`
	Description *string `form:"description" validate:"omitempty,max=500"`
	Actif       *bool   `form:"actif"`
}

// CategoryResponse sortie catégorie.
type CategoryResponse struct {
	ID               string    `json:"id"`
	Nom              string    `json:"nom"`
	Description      string    `json:"description"`
	Slug             string    `json:"slug"`
	Image            string    `json:"image"`
	DateAjout        time.Time `json:"date_ajout"`
	DateModification time.Time `json:"date_modification"`
	Actif            bool      `json:"actif"`
}

// CategoryEnvelope sortie d'une catégorie seule.
type CategoryEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Category CategoryResponse `json:"category"`
}

// CategoryListResponse liste de catégories, les plus récentes d'abord.
type CategoryListResponse struct {
	Success    bool               `json:"success"`
	Count      int                `json:"count"`
	Categories []CategoryResponse `json:"categories"`
}
