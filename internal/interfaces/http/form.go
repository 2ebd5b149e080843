package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// formValue lit un champ texte d'un corps multipart ou urlencoded, en
// distinguant champ absent et champ vide.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

// formStringPtr retourne un pointeur sur la valeur du champ, nil si absent.
func formStringPtr(c *fiber.Ctx, key string) *string {
	if v, ok := formValue(c, key); ok {
		return &v
	}
	return nil
}

// formBoolPtr retourne un pointeur bool, nil si absent ou illisible.
func formBoolPtr(c *fiber.Ctx, key string) *bool {
	v, ok := formValue(c, key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
