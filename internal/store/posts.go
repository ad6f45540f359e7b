package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/chad-schroeder/blogly/internal/models"

	"gorm.io/gorm"
)

// PostInput carries the editable post columns. TagIDs are attached on
// create; on update they replace the post's tags only when SyncTags is set.
type PostInput struct {
	Title    string
	Content  string
	TagIDs   []uint
	SyncTags bool
}

func (in PostInput) validate() error {
	if err := bounded("title", in.Title); err != nil {
		return err
	}
	return required("content", in.Content)
}

func (s *Store) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		UserID:  userID,
	}
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Select("id").First(&owner, userID).Error; err != nil {
			return err
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return addPostTags(tx, post.ID, in.TagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", translate(err))
	}
	return &post, nil
}

func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.conn(ctx).First(&post, id).Error; err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, translate(err))
	}
	return &post, nil
}

func (s *Store) ListPostsForUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts for user %d: %w", userID, err)
	}
	return posts, nil
}

// ListRecentPosts returns the newest posts across all users.
func (s *Store) ListRecentPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := s.conn(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	return posts, nil
}

func (s *Store) GetOwnerOfPost(ctx context.Context, postID uint) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).
		Joins("JOIN posts ON posts.user_id = users.id").
		Where("posts.id = ?", postID).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("get owner of post %d: %w", postID, translate(err))
	}
	return &user, nil
}

// UpdatePost changes title and content. Owner and creation time never change.
func (s *Store) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var post models.Post
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		post.Title = strings.TrimSpace(in.Title)
		post.Content = in.Content
		if err := tx.Model(&post).Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error; err != nil {
			return err
		}

		if !in.SyncTags {
			return nil
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return addPostTags(tx, post.ID, in.TagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, translate(err))
	}
	return &post, nil
}

// DeletePost removes the post and every tag link pointing at it.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, translate(err))
	}
	return nil
}
