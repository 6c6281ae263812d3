package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/LuffyPiratesYeah/malmoi-server/dto"
	"github.com/LuffyPiratesYeah/malmoi-server/middleware"
	"github.com/LuffyPiratesYeah/malmoi-server/models"
	"github.com/LuffyPiratesYeah/malmoi-server/services"
)

type AuthController struct {
	Users        *services.Users
	Verification *services.Verification
}

// SendCode issues an email verification code for signup.
func (a *AuthController) SendCode(c *fiber.Ctx) error {
	req := new(dto.SendCodeRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "a valid email address is required")
	}

	result, err := a.Verification.IssueCode(c.Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "verification code sent",
		"expiresIn": result.ExpiresIn,
		"cooldown":  result.Cooldown,
	})
}

// Signup creates an account after consuming the email verification code.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	req := new(dto.SignupRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "missing or invalid signup fields")
	}

	user, err := a.Users.Signup(c.Context(), services.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		UserType:         req.UserType,
		VerificationCode: req.VerificationCode,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// Login authenticates and returns the user plus access/refresh tokens.
func (a *AuthController) Login(c *fiber.Ctx) error {
	req := new(dto.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "email and password are required")
	}

	user, err := a.Users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := signToken(user, 24*time.Hour)
	if err != nil {
		return fail(c, err)
	}
	refreshToken, err := signToken(user, 7*24*time.Hour)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (a *AuthController) RefreshToken(c *fiber.Ctx) error {
	req := new(dto.RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, "cannot parse JSON")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "refreshToken is required")
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return middleware.Secret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   string(services.KindUnauthorized),
			"message": "invalid refresh token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c)
	}
	userID, _ := claims["id"].(string)
	user, err := a.Users.Get(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	newToken, err := signToken(user, 24*time.Hour)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"token": newToken})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	user, err := a.Users.Get(c.Context(), actor.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// Logout is a no-op for stateless JWTs; the client drops its tokens.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "successfully logged out"})
}

func signToken(user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.ID,
		"email":     user.Email,
		"userType":  string(user.UserType),
		"isTeacher": user.IsTeacher,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.Secret())
}
