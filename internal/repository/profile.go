package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles
// and their experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	AddExperience(ctx context.Context, exp *models.Experience) error
	AddEducation(ctx context.Context, edu *models.Education) error
	DeleteExperience(ctx context.Context, profileID, expID uint) error
	DeleteEducation(ctx context.Context, profileID, eduID uint) error
	DeleteWithUser(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// applyProfileDetails preloads the owning user and the history entries,
// newest first, so every read returns a fully hydrated profile.
func (r *profileRepository) applyProfileDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_date DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_date DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileByUserKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.applyProfileDetails(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewFieldNotFoundError("noprofile", "There is no profile for this user")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileByHandleKey(handle)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.applyProfileDetails(r.db.WithContext(ctx)).
			Where("handle = ?", handle).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewFieldNotFoundError("noprofile", "There is no profile for this user")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.applyProfileDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("handle", "That handle already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.ProfileListKey())
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("handle", "That handle already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID, profile.Handle)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, exp.ProfileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, edu.ProfileID)
	return nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, expID uint) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Experience{}, expID)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", expID)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, eduID uint) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Education{}, eduID)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Education", eduID)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

// DeleteWithUser removes the user's profile and the user record in one
// transaction. A missing profile is not an error; the account may never
// have created one. Profile and user rows are deleted outright rather
// than soft deleted, so the handle and email become reusable.
func (r *profileRepository) DeleteWithUser(ctx context.Context, userID uint) error {
	var handle string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case err == nil:
			handle = profile.Handle
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&profile).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no profile to remove
		default:
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	cache.InvalidateProfile(ctx, userID, handle)
	return nil
}

// invalidateByProfileID looks up the profile's cache identity before
// clearing it. Invalidation is best effort; a lookup failure just leaves
// the entry to expire by TTL.
func (r *profileRepository) invalidateByProfileID(ctx context.Context, profileID uint) {
	if cache.GetClient() == nil {
		return
	}
	var profile models.Profile
	if err := r.db.WithContext(ctx).Select("user_id", "handle").First(&profile, profileID).Error; err != nil {
		return
	}
	cache.InvalidateProfile(ctx, profile.UserID, profile.Handle)
}
