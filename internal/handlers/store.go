package handlers

import (
	"context"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/store"
)

// Store is the data layer the handlers depend on; *store.Store implements it.
type Store interface {
	CreateUser(ctx context.Context, in store.UserInput) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, in store.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error

	CreatePost(ctx context.Context, userID uint, in store.PostInput) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPostsForUser(ctx context.Context, userID uint) ([]models.Post, error)
	GetOwnerOfPost(ctx context.Context, postID uint) (*models.User, error)
	UpdatePost(ctx context.Context, id uint, in store.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error

	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	GetTag(ctx context.Context, id uint) (*models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id uint, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error

	ListTagsForPost(ctx context.Context, postID uint) ([]models.Tag, error)
	ListPostsForTag(ctx context.Context, tagID uint) ([]models.Post, error)
}

var _ Store = (*store.Store)(nil)
