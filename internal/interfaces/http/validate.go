package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mbodji/boutique-api/internal/application/dto"
)

var validate = validator.New()

// validateBody applique les tags `validate:` du DTO ; 400 à la première violation.
func validateBody(c *fiber.Ctx, in any) error {
	if err := validate.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.Error("VALIDATION", "champ "+e.Field()+" invalide ("+e.Tag()+")"))
		}
		return badRequest(c, "VALIDATION", "corps invalide")
	}
	return nil
}
