package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImage sentinelle d'image principale quand le produit n'a aucune image.
const DefaultProductImage = "default-product.jpg"

// Product représente un produit du catalogue.
// Invariant : ImagePrincipale est la sentinelle ou un membre de Images.
type Product struct {
	ID               string
	Nom              string // unique
	Description      string
	Prix             decimal.Decimal // >= 0
	CategorieID      string          // référence une Category existante
	QuantiteStock    int             // >= 0 à la création
	Images           []string        // chemins /uploads/...
	ImagePrincipale  string
	DateAjout        time.Time
	DateModification time.Time
	Actif            bool
}

// IsDefaultImage indique si un chemin correspond à la sentinelle produit.
func IsDefaultImage(path string) bool {
	return path == "" || path == DefaultProductImage || path == "/"+DefaultProductImage
}

// NormalizeMainImage rétablit l'invariant d'image principale : si l'image
// principale courante n'appartient plus à Images, la première image restante
// la remplace ; sans image restante, la sentinelle.
func (p *Product) NormalizeMainImage() {
	if len(p.Images) == 0 {
		p.ImagePrincipale = DefaultProductImage
		return
	}
	for _, img := range p.Images {
		if img == p.ImagePrincipale {
			return
		}
	}
	p.ImagePrincipale = p.Images[0]
}
