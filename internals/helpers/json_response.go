// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
   Every error body is {error: string, details?: [...]}
=================================*/

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JsonError: generic error (non-validation)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
	}
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// JsonErrorWithDetails: error with field-level details
func JsonErrorWithDetails(c *fiber.Ctx, status int, message string, details []FieldError) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   message,
		"details": details,
	})
}

// JsonValidationError: renders validator.v10 errors as 400 with details
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	details := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be less than " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "uuid":
		return fe.Field() + " must be a valid UUID"
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " is invalid"
	}
}

/* ===============================
   Success helpers
=================================*/

// JsonOK: 200 with the given body as-is
func JsonOK(c *fiber.Ctx, body fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonCreated: 201 with the given body as-is
func JsonCreated(c *fiber.Ctx, body fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(body)
}
