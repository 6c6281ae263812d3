package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/dto"
	"github.com/LuffyPiratesYeah/malmoi-server/redis"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
)

const (
	classListCacheKey = "classes:list"
	classListCacheTTL = 60 * time.Second
)

type ClassController struct {
	Registry *services.Registry
}

// GetAllClasses lists every class, newest first. The public listing is the
// hottest read in the app, so it goes through a redis cache-aside when a
// client is configured.
func (cc *ClassController) GetAllClasses(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, classListCacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	classes, err := cc.Registry.List(c.Context())
	if err != nil {
		return fail(c, err)
	}

	if redis.Client != nil {
		if payload, err := json.Marshal(classes); err == nil {
			redis.Client.Set(redis.Ctx, classListCacheKey, payload, classListCacheTTL)
		}
	}
	return c.JSON(classes)
}

func (cc *ClassController) GetClass(c *fiber.Ctx) error {
	class, err := cc.Registry.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(class)
}

// CreateClass publishes a class owned by the authenticated tutor.
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	req := new(dto.CreateClassRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "missing or invalid class fields")
	}

	class, err := cc.Registry.Create(c.Context(), actor.ID, services.ClassInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Category:    req.Category,
		Type:        req.Type,
		Image:       req.Image,
		Details:     req.Details,
	})
	if err != nil {
		return fail(c, err)
	}

	invalidateClassCache()
	return c.Status(fiber.StatusCreated).JSON(class)
}

func (cc *ClassController) UpdateClass(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	req := new(dto.UpdateClassRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "invalid class fields")
	}

	class, err := cc.Registry.Update(c.Context(), actor.ID, c.Params("id"), services.ClassUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Category:    req.Category,
		Type:        req.Type,
		Image:       req.Image,
		Details:     req.Details,
	})
	if err != nil {
		return fail(c, err)
	}

	invalidateClassCache()
	return c.JSON(class)
}

func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := cc.Registry.Delete(c.Context(), actor.ID, c.Params("id")); err != nil {
		return fail(c, err)
	}

	invalidateClassCache()
	return c.SendStatus(fiber.StatusNoContent)
}

func invalidateClassCache() {
	if redis.Client != nil {
		redis.Client.Del(redis.Ctx, classListCacheKey)
	}
}
