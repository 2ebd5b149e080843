package entity

import "time"

// DefaultCategoryImage sentinelle servie quand aucune image n'a été uploadée.
// Jamais supprimée du stockage.
const DefaultCategoryImage = "default-category.jpg"

// Category représente une catégorie du catalogue.
// Le slug est une fonction déterministe du nom (voir domain.Slugify).
type Category struct {
	ID               string
	Nom              string // unique
	Description      string
	Slug             string
	Image            string // chemin /uploads/... ou sentinelle
	DateAjout        time.Time
	DateModification time.Time
	Actif            bool
}

// HasCustomImage indique si la catégorie possède une image uploadée (non sentinelle).
func (c *Category) HasCustomImage() bool {
	return c.Image != "" && c.Image != DefaultCategoryImage && c.Image != "/"+DefaultCategoryImage
}
