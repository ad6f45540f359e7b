package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/chad-schroeder/blogly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if err := bounded("name", name); err != nil {
		return nil, err
	}

	tag := models.Tag{Name: strings.TrimSpace(name)}
	if err := s.conn(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("create tag: %w", translate(err))
	}
	return &tag, nil
}

func (s *Store) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.conn(ctx).First(&tag, id).Error; err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, translate(err))
	}
	return &tag, nil
}

func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.conn(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *Store) UpdateTag(ctx context.Context, id uint, name string) (*models.Tag, error) {
	if err := bounded("name", name); err != nil {
		return nil, err
	}

	var tag models.Tag
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, id).Error; err != nil {
			return err
		}
		tag.Name = strings.TrimSpace(name)
		return tx.Model(&tag).Update("name", tag.Name).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update tag %d: %w", id, translate(err))
	}
	return &tag, nil
}

// DeleteTag removes the tag and every post link pointing at it.
func (s *Store) DeleteTag(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return fmt.Errorf("delete tag %d: %w", id, translate(err))
	}
	return nil
}

// TagPost links a post to a tag. Linking an already linked pair is a no-op.
func (s *Store) TagPost(ctx context.Context, postID, tagID uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}
		return addPostTags(tx, postID, []uint{tagID})
	})
	if err != nil {
		return fmt.Errorf("tag post %d with %d: %w", postID, tagID, translate(err))
	}
	return nil
}

func (s *Store) ListTagsForPost(ctx context.Context, postID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.conn(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags for post %d: %w", postID, err)
	}
	return tags, nil
}

func (s *Store) ListPostsForTag(ctx context.Context, tagID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts for tag %d: %w", tagID, err)
	}
	return posts, nil
}

// addPostTags inserts links for every tag id, failing with
// gorm.ErrRecordNotFound when any of them does not exist.
func addPostTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	tagIDs = uniqueIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(tagIDs) {
		return gorm.ErrRecordNotFound
	}

	links := make([]models.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, models.PostTag{PostID: postID, TagID: tagID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
