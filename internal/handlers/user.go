package handlers

import (
	"fmt"
	"net/http"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	store Store
	log   *zap.Logger
}

func NewUserHandler(st Store, log *zap.Logger) *UserHandler {
	return &UserHandler{store: st, log: log}
}

type userForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	ImageURL  string `form:"image_url"`
}

func userFormFrom(u *models.User) userForm {
	return userForm{FirstName: u.FirstName, LastName: u.LastName, ImageURL: u.Avatar()}
}

// input converts the form; image_url is left untouched when the field was not submitted.
func (f userForm) input(c *gin.Context) store.UserInput {
	in := store.UserInput{FirstName: f.FirstName, LastName: f.LastName}
	if _, ok := c.GetPostForm("image_url"); ok {
		img := f.ImageURL
		in.ImageURL = &img
	}
	return in
}

// List - 用户列表 /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		failed(c, h.log, err, "Users")
		return
	}

	Render(c, http.StatusOK, "users/list.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

func (h *UserHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "users/new.html", gin.H{
		"Title": "Create a user",
		"Form":  userForm{},
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "users/new.html", gin.H{
			"Title": "Create a user",
			"Form":  form,
			"Error": missingFields,
		})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), form.input(c))
	if err != nil {
		if code, message, ok := formError(err); ok {
			Render(c, code, "users/new.html", gin.H{
				"Title": "Create a user",
				"Form":  form,
				"Error": message,
			})
			return
		}
		failed(c, h.log, err, "User")
		return
	}

	flash(c, fmt.Sprintf("Added %s.", user.FullName()))
	c.Redirect(http.StatusFound, "/users")
}

// Detail - 用户主页 /users/:id
func (h *UserHandler) Detail(c *gin.Context) {
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

	posts, err := h.store.ListPostsForUser(ctx, user.ID)
	if err != nil {
		failed(c, h.log, err, "Posts")
		return
	}

	Render(c, http.StatusOK, "users/detail.html", gin.H{
		"Title": user.FullName(),
		"User":  *user,
		"Posts": posts,
	})
}

func (h *UserHandler) ShowEdit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		failed(c, h.log, err, "User")
		return
	}

	Render(c, http.StatusOK, "users/edit.html", gin.H{
		"Title": "Edit " + user.FullName(),
		"User":  *user,
		"Form":  userFormFrom(user),
	})
}

func (h *UserHandler) Update(c *gin.Context) {
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

	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "users/edit.html", gin.H{
			"Title": "Edit " + user.FullName(),
			"User":  *user,
			"Form":  form,
			"Error": missingFields,
		})
		return
	}

	updated, err := h.store.UpdateUser(ctx, id, form.input(c))
	if err != nil {
		if code, message, ok := formError(err); ok {
			Render(c, code, "users/edit.html", gin.H{
				"Title": "Edit " + user.FullName(),
				"User":  *user,
				"Form":  form,
				"Error": message,
			})
			return
		}
		failed(c, h.log, err, "User")
		return
	}

	flash(c, fmt.Sprintf("Updated %s.", updated.FullName()))
	c.Redirect(http.StatusFound, "/users")
}

// Delete removes the user along with all of their posts.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		failed(c, h.log, err, "User")
		return
	}

	flash(c, "User deleted.")
	c.Redirect(http.StatusFound, "/users")
}
