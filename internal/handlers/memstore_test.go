package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/store"
)

type link struct {
	postID uint
	tagID  uint
}

// memStore mirrors the database store's rules in memory.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
	posts  map[uint]models.Post
	tags   map[uint]models.Tag
	links  map[link]struct{}
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uint]models.User{},
		posts: map[uint]models.Post{},
		tags:  map[uint]models.Tag{},
		links: map[link]struct{}{},
		clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func blank(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &store.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func tooLong(field, v string) error {
	if err := blank(field, v); err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(v)) > store.MaxNameLength {
		return &store.ValidationError{Field: field, Reason: "must be at most 255 characters"}
	}
	return nil
}

func (m *memStore) CreateUser(_ context.Context, in store.UserInput) (*models.User, error) {
	if err := blank("first_name", in.FirstName); err != nil {
		return nil, err
	}
	if err := blank("last_name", in.LastName); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{ID: m.id(), FirstName: strings.TrimSpace(in.FirstName), LastName: strings.TrimSpace(in.LastName)}
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		img := strings.TrimSpace(*in.ImageURL)
		u.ImageURL = &img
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) UpdateUser(_ context.Context, id uint, in store.UserInput) (*models.User, error) {
	if err := blank("first_name", in.FirstName); err != nil {
		return nil, err
	}
	if err := blank("last_name", in.LastName); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	if in.ImageURL != nil {
		u.ImageURL = nil
		if img := strings.TrimSpace(*in.ImageURL); img != "" {
			u.ImageURL = &img
		}
	}
	m.users[id] = u
	return &u, nil
}

func (m *memStore) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	for pid, p := range m.posts {
		if p.UserID == id {
			m.unlinkPost(pid)
			delete(m.posts, pid)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) unlinkPost(postID uint) {
	for l := range m.links {
		if l.postID == postID {
			delete(m.links, l)
		}
	}
}

func (m *memStore) titleTaken(title string, except uint) bool {
	for _, p := range m.posts {
		if p.Title == title && p.ID != except {
			return true
		}
	}
	return false
}

func (m *memStore) tagsExist(ids []uint) bool {
	for _, id := range ids {
		if _, ok := m.tags[id]; !ok {
			return false
		}
	}
	return true
}

func (m *memStore) CreatePost(_ context.Context, userID uint, in store.PostInput) (*models.Post, error) {
	if err := tooLong("title", in.Title); err != nil {
		return nil, err
	}
	if err := blank("content", in.Content); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return nil, store.ErrNotFound
	}
	title := strings.TrimSpace(in.Title)
	if m.titleTaken(title, 0) {
		return nil, store.ErrDuplicate
	}
	if !m.tagsExist(in.TagIDs) {
		return nil, store.ErrNotFound
	}

	m.clock = m.clock.Add(time.Minute)
	p := models.Post{ID: m.id(), Title: title, Content: in.Content, UserID: userID, CreatedAt: m.clock}
	m.posts[p.ID] = p
	for _, tid := range in.TagIDs {
		m.links[link{p.ID, tid}] = struct{}{}
	}
	return &p, nil
}

func (m *memStore) GetPost(_ context.Context, id uint) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func sortPosts(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func (m *memStore) ListPostsForUser(_ context.Context, userID uint) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sortPosts(out)
	return out, nil
}

func (m *memStore) GetOwnerOfPost(_ context.Context, postID uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}
	u, ok := m.users[p.UserID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) UpdatePost(_ context.Context, id uint, in store.PostInput) (*models.Post, error) {
	if err := tooLong("title", in.Title); err != nil {
		return nil, err
	}
	if err := blank("content", in.Content); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	title := strings.TrimSpace(in.Title)
	if m.titleTaken(title, id) {
		return nil, store.ErrDuplicate
	}
	if in.SyncTags && !m.tagsExist(in.TagIDs) {
		return nil, store.ErrNotFound
	}

	p.Title = title
	p.Content = in.Content
	m.posts[id] = p
	if in.SyncTags {
		m.unlinkPost(id)
		for _, tid := range in.TagIDs {
			m.links[link{id, tid}] = struct{}{}
		}
	}
	return &p, nil
}

func (m *memStore) DeletePost(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	m.unlinkPost(id)
	delete(m.posts, id)
	return nil
}

func (m *memStore) nameTaken(name string, except uint) bool {
	for _, t := range m.tags {
		if t.Name == name && t.ID != except {
			return true
		}
	}
	return false
}

func (m *memStore) CreateTag(_ context.Context, name string) (*models.Tag, error) {
	if err := tooLong("name", name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	name = strings.TrimSpace(name)
	if m.nameTaken(name, 0) {
		return nil, store.ErrDuplicate
	}
	t := models.Tag{ID: m.id(), Name: name}
	m.tags[t.ID] = t
	return &t, nil
}

func (m *memStore) GetTag(_ context.Context, id uint) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) ListTags(_ context.Context) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) UpdateTag(_ context.Context, id uint, name string) (*models.Tag, error) {
	if err := tooLong("name", name); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	name = strings.TrimSpace(name)
	if m.nameTaken(name, id) {
		return nil, store.ErrDuplicate
	}
	t.Name = name
	m.tags[id] = t
	return &t, nil
}

func (m *memStore) DeleteTag(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[id]; !ok {
		return store.ErrNotFound
	}
	for l := range m.links {
		if l.tagID == id {
			delete(m.links, l)
		}
	}
	delete(m.tags, id)
	return nil
}

func (m *memStore) ListTagsForPost(_ context.Context, postID uint) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Tag
	for l := range m.links {
		if l.postID == postID {
			out = append(out, m.tags[l.tagID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) ListPostsForTag(_ context.Context, tagID uint) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for l := range m.links {
		if l.tagID == tagID {
			out = append(out, m.posts[l.postID])
		}
	}
	sortPosts(out)
	return out, nil
}

func (m *memStore) linkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

func (m *memStore) postCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts)
}
