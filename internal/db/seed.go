package db

import (
	"context"
	"fmt"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedPost struct {
	title, content string
	tags           []string
}

type seedUser struct {
	first, last, image string
	posts              []seedPost
}

var seedTags = []string{"fun", "golang", "history", "math"}

var seedUsers = []seedUser{
	{
		first: "Ada", last: "Lovelace",
		image: "https://upload.wikimedia.org/wikipedia/commons/a/a4/Ada_Lovelace_portrait.jpg",
		posts: []seedPost{
			{"First Post", "Hello from the **Analytical Engine**.", []string{"history", "math"}},
			{"Notes on Bernoulli numbers", "An algorithm intended to be carried out by a machine.", []string{"math"}},
		},
	},
	{
		first: "Grace", last: "Hopper",
		posts: []seedPost{
			{"Found a bug", "It was a moth, taped into the log book.", []string{"fun", "history"}},
		},
	},
	{first: "Alan", last: "Turing"},
}

// Seed inserts demo users, posts and tags when the users table is empty.
func Seed(ctx context.Context, gdb *gorm.DB, st *store.Store, log *zap.Logger) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("users already seeded, skipping")
		return nil
	}

	tagIDs := make(map[string]uint, len(seedTags))
	for _, name := range seedTags {
		tag, err := st.CreateTag(ctx, name)
		if err != nil {
			return fmt.Errorf("seed tag %s: %w", name, err)
		}
		tagIDs[name] = tag.ID
	}

	for _, su := range seedUsers {
		in := store.UserInput{FirstName: su.first, LastName: su.last}
		if su.image != "" {
			in.ImageURL = &su.image
		}
		user, err := st.CreateUser(ctx, in)
		if err != nil {
			return fmt.Errorf("seed user %s %s: %w", su.first, su.last, err)
		}

		for _, sp := range su.posts {
			post, err := st.CreatePost(ctx, user.ID, store.PostInput{Title: sp.title, Content: sp.content})
			if err != nil {
				return fmt.Errorf("seed post %q: %w", sp.title, err)
			}
			for _, name := range sp.tags {
				if err := st.TagPost(ctx, post.ID, tagIDs[name]); err != nil {
					return err
				}
			}
		}
	}

	recent, err := st.ListRecentPosts(ctx, 5)
	if err != nil {
		return err
	}
	log.Info("seed data created",
		zap.Int("users", len(seedUsers)),
		zap.Int("tags", len(seedTags)),
		zap.Int("recent_posts", len(recent)),
	)
	return nil
}
