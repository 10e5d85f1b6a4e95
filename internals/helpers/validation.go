package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationMap flattens validator.v10 errors into field → messages.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required"
		case "email":
			msg = "invalid email format"
		case "min":
			msg = field + " must be at least " + fe.Param()
		case "max":
			msg = field + " must be at most " + fe.Param()
		case "gte":
			msg = field + " must be >= " + fe.Param()
		case "gt":
			msg = field + " must be > " + fe.Param()
		case "oneof":
			msg = field + " must be one of " + fe.Param()
		default:
			msg = field + " is invalid"
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// JsonValidationErrorFrom is the one-liner controllers use after a
// failed dto.Validate().
func JsonValidationErrorFrom(c *fiber.Ctx, err error) error {
	return JsonValidationError(c, ValidationMap(err))
}
