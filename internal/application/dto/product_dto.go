package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrée de création de produit (champs texte du multipart,
// convertis par le handler ; les images uploadées transitent à part).
type CreateProductRequest struct {
	Nom           string          `form:"nom" validate:"required,min=1,max=200"`
	Description   string          `form:"description" validate:"required"`
	Prix          decimal.Decimal `form:"prix"`
	CategorieID   string          `form:"categorie_id" validate:"required"`
	QuantiteStock int             `form:"quantite_stock" validate:"min=0"`
}

// UpdateProductRequest entrée de mise à jour. ImagesToKeep, si fourni, désigne
// les images existantes à conserver ; les autres sont supprimées du stockage.
type UpdateProductRequest struct {
	Nom             *string          `form:"nom" validate:"omitempty,min=1,max=200"`
	Description     *string          `form:"description"`
	Prix            *decimal.Decimal `form:"prix"`
	CategorieID     *string          `form:"categorie_id"`
	QuantiteStock   *int             `form:"quantite_stock" validate:"omitempty,min=0"`
	Actif           *bool            `form:"actif"`
	ImagesToKeep    []string         `form:"imagesToKeep"`
	HasImagesToKeep bool             `form:"-"` // distingue liste vide et liste absente
}

// UpdateStockRequest écrasement direct du stock.
type UpdateStockRequest struct {
	QuantiteStock int `json:"quantite_stock" validate:"min=0"`
}

// CategoryRef référence de catégorie embarquée dans un produit (id + nom).
type CategoryRef struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}

// ProductResponse sortie produit. CategorieID reprend la forme peuplée de l'API
// d'origine : un objet {id, nom}.
type ProductResponse struct {
	ID               string          `json:"id"`
	Nom              string          `json:"nom"`
	Description      string          `json:"description"`
	Prix             decimal.Decimal `json:"prix"`
	CategorieID      CategoryRef     `json:"categorie_id"`
	QuantiteStock    int             `json:"quantite_stock"`
	Images           []string        `json:"images"`
	ImagePrincipale  string          `json:"image_principale"`
	DateAjout        time.Time       `json:"date_ajout"`
	DateModification time.Time       `json:"date_modification"`
	Actif            bool            `json:"actif"`
}

// ProductEnvelope sortie d'un produit seul.
type ProductEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product ProductResponse `json:"product"`
}

// ProductListResponse liste filtrée de produits.
type ProductListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}
