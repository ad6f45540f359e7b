package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/chad-schroeder/blogly/internal/models"

	"gorm.io/gorm"
)

// UserInput carries the editable user columns. A nil ImageURL leaves the
// stored value untouched on update; an empty one clears it.
type UserInput struct {
	FirstName string
	LastName  string
	ImageURL  *string
}

func (in UserInput) validate() error {
	if err := required("first_name", in.FirstName); err != nil {
		return err
	}
	return required("last_name", in.LastName)
}

func normalizeURL(u *string) *string {
	if u == nil {
		return nil
	}
	v := strings.TrimSpace(*u)
	if v == "" {
		return nil
	}
	return &v
}

func (s *Store) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		ImageURL:  normalizeURL(in.ImageURL),
	}
	if err := s.conn(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", translate(err))
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, translate(err))
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("last_name ASC, first_name ASC, id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var user models.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		user.FirstName = strings.TrimSpace(in.FirstName)
		user.LastName = strings.TrimSpace(in.LastName)
		if in.ImageURL != nil {
			user.ImageURL = normalizeURL(in.ImageURL)
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"image_url":  user.ImageURL,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, translate(err))
	}
	return &user, nil
}

// DeleteUser removes the user together with its posts and their tag links.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			return err
		}

		postIDs := tx.Model(&models.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, translate(err))
	}
	return nil
}
