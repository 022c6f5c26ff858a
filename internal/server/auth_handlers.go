package server

import (
	"devconnect/internal/auth"
	"devconnect/internal/gravatar"
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the original accounts were hashed with.
const bcryptCost = 10

// Register handles POST /api/users/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req validation.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidateRegister(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.FieldErrors{"email": "Email already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Avatar:   gravatar.URL(req.Email),
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondServiceError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/users/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidateLogin(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(
			models.FieldErrors{"email": "User not found"})
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.FieldErrors{"password": "Password incorrect"})
	}

	token, err := s.tokens.Issue(auth.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   "Bearer " + token,
	})
}

// CurrentUser handles GET /api/users/current. The email is read from the
// store rather than embedded in the token.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(auth.Claims)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":     claims.UserID,
		"name":   claims.Name,
		"email":  user.Email,
		"avatar": claims.Avatar,
	})
}
