package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentProfile handles GET /api/profile
func (s *Server) GetCurrentProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	profiles, err := s.profileService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if profiles == nil {
		// an empty page is still a page, not an error
		profiles = []*models.Profile{}
	}
	return c.JSON(profiles)
}

// GetProfileByHandle handles GET /api/profile/handle/:handle
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")
	profile, err := s.profileService.GetByHandle(c.Context(), handle)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetProfileByUserID handles GET /api/profile/user/:userId
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	profile, err := s.profileService.GetByUserID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile, creating the caller's profile
// or replacing its fields.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req validation.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidateProfile(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	profile, err := s.profileService.Upsert(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience handles POST /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req validation.ExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidateExperience(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	profile, err := s.profileService.AddExperience(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles POST /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req validation.EducationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs, ok := validation.ValidateEducation(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	profile, err := s.profileService.AddEducation(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.profileService.DeleteExperience(c.Context(), currentUserID(c), expID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.profileService.DeleteEducation(c.Context(), currentUserID(c), eduID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile, removing the caller's
// profile and user record.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
