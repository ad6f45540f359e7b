package handlers

import (
	"fmt"
	"net/http"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/store"
	"github.com/chad-schroeder/blogly/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	store Store
	log   *zap.Logger
}

func NewPostHandler(st Store, log *zap.Logger) *PostHandler {
	return &PostHandler{store: st, log: log}
}

type postForm struct {
	Title   string   `form:"post_title" binding:"required"`
	Content string   `form:"post_content" binding:"required"`
	TagIDs  []string `form:"tag_ids"`
}

// input converts the form. The edit form always carries an empty tag_ids
// value, so a present tag_ids key means the tag set should be replaced.
func (f postForm) input(c *gin.Context) store.PostInput {
	in := store.PostInput{Title: f.Title, Content: f.Content}
	if values, ok := c.GetPostFormArray("tag_ids"); ok {
		in.TagIDs = utils.ParseIDs(values)
		in.SyncTags = true
	}
	return in
}

// selected resolves the submitted tag ids against the known tags so the form
// can be re-rendered with the same boxes ticked.
func (f postForm) selected(all []models.Tag) []models.Tag {
	ids := utils.ParseIDs(f.TagIDs)
	var out []models.Tag
	for _, t := range all {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func duplicateTitle(title string) string {
	return fmt.Sprintf("A post titled %q already exists.", title)
}

// ShowCreate - 发布文章页面 /users/:id/posts/new
func (h *PostHandler) ShowCreate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		failed(c, h.log, err, "User")
		return
	}

	tags, err := h.store.ListTags(ctx)
	if err != nil {
		failed(c, h.log, err, "Tags")
		return
	}

	Render(c, http.StatusOK, "posts/new.html", gin.H{
		"Title": "Add post for " + user.FullName(),
		"User":  *user,
		"Tags":  tags,
		"Form":  postForm{},
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		failed(c, h.log, err, "User")
		return
	}

	var form postForm
	bindErr := c.ShouldBind(&form)

	rerender := func(code int, message string) {
		tags, err := h.store.ListTags(ctx)
		if err != nil {
			failed(c, h.log, err, "Tags")
			return
		}
		Render(c, code, "posts/new.html", gin.H{
			"Title":    "Add post for " + user.FullName(),
			"User":     *user,
			"Tags":     tags,
			"Selected": form.selected(tags),
			"Form":     form,
			"Error":    message,
		})
	}

	if bindErr != nil {
		rerender(http.StatusBadRequest, missingFields)
		return
	}

	post, err := h.store.CreatePost(ctx, user.ID, form.input(c))
	if err != nil {
		if code, message, ok := formError(err); ok {
			if code == http.StatusConflict {
				message = duplicateTitle(form.Title)
			}
			rerender(code, message)
			return
		}
		failed(c, h.log, err, "User or tag")
		return
	}

	flash(c, fmt.Sprintf("Published %q.", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

// Detail - 文章详情页 /posts/:id
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.store.GetPost(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Post")
		return
	}

	owner, err := h.store.GetOwnerOfPost(ctx, post.ID)
	if err != nil {
		failed(c, h.log, err, "Author")
		return
	}

	tags, err := h.store.ListTagsForPost(ctx, post.ID)
	if err != nil {
		failed(c, h.log, err, "Tags")
		return
	}

	Render(c, http.StatusOK, "posts/detail.html", gin.H{
		"Title": post.Title,
		"Post":  *post,
		"Owner": *owner,
		"Tags":  tags,
	})
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.store.GetPost(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Post")
		return
	}

	tags, err := h.store.ListTags(ctx)
	if err != nil {
		failed(c, h.log, err, "Tags")
		return
	}
	selected, err := h.store.ListTagsForPost(ctx, post.ID)
	if err != nil {
		failed(c, h.log, err, "Tags")
		return
	}

	Render(c, http.StatusOK, "posts/edit.html", gin.H{
		"Title":    "Edit post",
		"Post":     *post,
		"Tags":     tags,
		"Selected": selected,
		"Form":     postForm{Title: post.Title, Content: post.Content},
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.store.GetPost(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Post")
		return
	}

	var form postForm
	bindErr := c.ShouldBind(&form)

	rerender := func(code int, message string) {
		tags, err := h.store.ListTags(ctx)
		if err != nil {
			failed(c, h.log, err, "Tags")
			return
		}
		Render(c, code, "posts/edit.html", gin.H{
			"Title":    "Edit post",
			"Post":     *post,
			"Tags":     tags,
			"Selected": form.selected(tags),
			"Form":     form,
			"Error":    message,
		})
	}

	if bindErr != nil {
		rerender(http.StatusBadRequest, missingFields)
		return
	}

	if _, err := h.store.UpdatePost(ctx, id, form.input(c)); err != nil {
		if code, message, ok := formError(err); ok {
			if code == http.StatusConflict {
				message = duplicateTitle(form.Title)
			}
			rerender(code, message)
			return
		}
		failed(c, h.log, err, "Post or tag")
		return
	}

	flash(c, "Post updated.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", id))
}

// Delete removes the post and its tag links, then returns to the author's page.
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.store.GetPost(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Post")
		return
	}

	if err := h.store.DeletePost(ctx, post.ID); err != nil {
		failed(c, h.log, err, "Post")
		return
	}

	flash(c, fmt.Sprintf("Deleted %q.", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", post.UserID))
}
