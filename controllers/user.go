package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/dto"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
	"github.com/LuffyPiratesYeah/malmoi-server/store"
)

type UserController struct {
	Users *services.Users
}

// GetAllUsers is the admin listing behind the verification dashboard
// (?verificationStatus=pending&userType=teacher).
func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	users, err := uc.Users.List(c.Context(), actor, store.UserFilter{
		VerificationStatus: c.Query("verificationStatus"),
		UserType:           c.Query("userType"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	user, err := uc.Users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UpdateUser edits profile fields; attaching verification documents moves
// the user into pending review.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	req := new(dto.UpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "invalid profile fields")
	}

	user, err := uc.Users.UpdateProfile(c.Context(), actor, c.Params("id"), services.ProfileUpdateInput{
		Name:                req.Name,
		ProfileImage:        req.ProfileImage,
		CertificationDocURL: req.CertificationDocURL,
		IDDocURL:            req.IDDocURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// ApproveUser is the admin approval: pending -> verified plus the teacher
// flag, with a best-effort notification email.
func (uc *UserController) ApproveUser(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := uc.Users.Approve(c.Context(), actor, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}
