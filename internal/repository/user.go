// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"scribe/internal/models"
	"scribe/internal/observability"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail matches case-insensitively and returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UsernameTaken reports whether another user (excluding excludeID) holds username, ignoring case.
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	// EmailTaken reports whether another user (excluding excludeID) holds email, ignoring case.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and every post they own.
	Delete(ctx context.Context, id uint) error
	// Transaction runs fn against a repository bound to a single database transaction.
	Transaction(ctx context.Context, fn func(tx UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByID", "users")
	defer span.End()
	defer observability.TrackQuery("select", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByEmail", "users")
	defer span.End()
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.taken(ctx, "username", username, excludeID)
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.taken(ctx, "email", email, excludeID)
}

// taken counts rows whose lower(column) equals value. column is never user input.
func (r *userRepository) taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	defer observability.TrackQuery("count", "users")()

	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Where("lower("+column+") = ?", strings.ToLower(value))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Create", "users")
	defer span.End()
	defer observability.TrackQuery("insert", "users")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateUserWriteError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Update", "users")
	defer span.End()
	defer observability.TrackQuery("update", "users")()

	result := r.db.WithContext(ctx).Model(user).
		Select("username", "email", "image_file", "updated_at").
		Updates(user)
	if result.Error != nil {
		return translateUserWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", user.ID)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "Delete", "users")
	defer span.End()
	defer observability.TrackQuery("delete", "users")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Posts go first so the delete also holds on stores without cascading FKs.
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("User", id)
		}
		return nil
	})
}

func (r *userRepository) Transaction(ctx context.Context, fn func(tx UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}
