package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbodji/boutique-api/internal/domain"
)

// Le slug est une fonction pure et déterministe du nom : même entrée, même sortie.
func TestSlugify(t *testing.T) {
	cases := []struct {
		nom  string
		want string
	}{
		{"Électronique & Gadgets", "electronique-gadgets"},
		{"Audio", "audio"},
		{"Vêtements Homme", "vetements-homme"},
		{"Beauté / Santé", "beaute-sante"},
		{"  Maison  &  Déco  ", "maison-deco"},
		{"Téléphonie", "telephonie"},
		{"Çà & Là", "ca-la"},
		{"100% Coton", "100-coton"},
	}
	for _, tc := range cases {
		t.Run(tc.nom, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Slugify(tc.nom))
		})
	}
}

func TestSlugify_Deterministe(t *testing.T) {
	first := domain.Slugify("Électronique & Gadgets")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, domain.Slugify("Électronique & Gadgets"))
	}
}
