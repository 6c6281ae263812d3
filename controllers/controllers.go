package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
)

// fail maps a service error to its status-coded JSON body. Anything that is
// not a *services.Error is treated as an internal failure.
func fail(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		body := fiber.Map{
			"error":   string(svcErr.Kind),
			"message": svcErr.Message,
		}
		if svcErr.RetryAfter > 0 {
			body["retryAfter"] = svcErr.RetryAfter
		}
		return c.Status(svcErr.HTTPStatus()).JSON(body)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   string(services.KindInternal),
		"message": "internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   string(services.KindInvalidInput),
		"message": message,
	})
}

// currentActor reads the identity stashed by middleware.Protected.
func currentActor(c *fiber.Ctx) (services.Actor, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return services.Actor{}, false
	}
	userType, _ := c.Locals("userType").(string)
	return services.Actor{
		ID:       userID,
		UserType: models.UserType(userType),
	}, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   string(services.KindUnauthorized),
		"message": "authentication required",
	})
}
