// Package service implements the business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.profileRepo.GetByHandle(ctx, handle)
}

func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

// Upsert creates the caller's profile or replaces its editable fields.
// One profile per user; the handle must stay unique across all users.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in validation.ProfileInput) (*models.Profile, error) {
	if err := s.checkHandleAvailable(ctx, userID, in.Handle); err != nil {
		return nil, err
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
			return nil, err
		}
		existing = nil
	}

	skills := splitSkills(in.Skills)
	social := models.SocialLinks{
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	}

	if existing == nil {
		profile := &models.Profile{
			UserID:         userID,
			Handle:         in.Handle,
			Company:        in.Company,
			Website:        in.Website,
			Location:       in.Location,
			Status:         in.Status,
			Bio:            in.Bio,
			GithubUsername: in.GithubUsername,
			Skills:         skills,
			Social:         social,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return s.profileRepo.GetByUserID(ctx, userID)
	}

	// Required fields always overwrite. Optional fields merge: an omitted
	// or empty value keeps what is stored. Social links are replaced as a
	// set, so dropping one link from the request clears it.
	existing.Handle = in.Handle
	existing.Status = in.Status
	existing.Skills = skills
	existing.Social = social
	mergeField(&existing.Company, in.Company)
	mergeField(&existing.Website, in.Website)
	mergeField(&existing.Location, in.Location)
	mergeField(&existing.Bio, in.Bio)
	mergeField(&existing.GithubUsername, in.GithubUsername)

	if err := s.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// checkHandleAvailable rejects a handle already claimed by another user.
// The unique index still backstops concurrent upserts.
func (s *ProfileService) checkHandleAvailable(ctx context.Context, userID uint, handle string) error {
	byHandle, err := s.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return err
	}
	if byHandle.UserID != userID {
		return models.NewConflictError("handle", "That handle already exists")
	}
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in validation.ExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, err := parseDate("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", in.To)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in validation.EducationInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, err := parseDate("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", in.To)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's profile and user record.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.profileRepo.DeleteWithUser(ctx, userID)
}

// mergeField overwrites dst only when the incoming value is non-empty.
func mergeField(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// splitSkills turns the comma-separated skills field into a trimmed list.
func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// dateLayouts are the request formats accepted for history dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &models.AppError{
		Code:    "VALIDATION_ERROR",
		Field:   field,
		Message: "Invalid date format, expected YYYY-MM-DD",
	}
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
