package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TagHandler struct {
	store Store
	log   *zap.Logger
}

func NewTagHandler(st Store, log *zap.Logger) *TagHandler {
	return &TagHandler{store: st, log: log}
}

type tagForm struct {
	Name string `form:"tag_name" binding:"required"`
}

func duplicateTag(name string) string {
	return fmt.Sprintf("A tag named %q already exists.", name)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		failed(c, h.log, err, "Tags")
		return
	}

	Render(c, http.StatusOK, "tags/list.html", gin.H{
		"Title": "Tags",
		"Tags":  tags,
	})
}

// Detail shows a tag with every post carrying it.
func (h *TagHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Tag not found")
		return
	}

	ctx := c.Request.Context()
	tag, err := h.store.GetTag(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Tag")
		return
	}

	posts, err := h.store.ListPostsForTag(ctx, tag.ID)
	if err != nil {
		failed(c, h.log, err, "Posts")
		return
	}

	Render(c, http.StatusOK, "tags/detail.html", gin.H{
		"Title": tag.Name,
		"Tag":   *tag,
		"Posts": posts,
	})
}

func (h *TagHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "tags/new.html", gin.H{
		"Title": "Create a tag",
		"Form":  tagForm{},
	})
}

func (h *TagHandler) Create(c *gin.Context) {
	var form tagForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "tags/new.html", gin.H{
			"Title": "Create a tag",
			"Form":  form,
			"Error": missingFields,
		})
		return
	}

	tag, err := h.store.CreateTag(c.Request.Context(), form.Name)
	if err != nil {
		if code, message, ok := formError(err); ok {
			if code == http.StatusConflict {
				message = duplicateTag(form.Name)
			}
			Render(c, code, "tags/new.html", gin.H{
				"Title": "Create a tag",
				"Form":  form,
				"Error": message,
			})
			return
		}
		failed(c, h.log, err, "Tag")
		return
	}

	flash(c, fmt.Sprintf("Added tag %q.", tag.Name))
	c.Redirect(http.StatusFound, "/tags")
}

func (h *TagHandler) ShowEdit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Tag not found")
		return
	}

	tag, err := h.store.GetTag(c.Request.Context(), id)
	if err != nil {
		failed(c, h.log, err, "Tag")
		return
	}

	Render(c, http.StatusOK, "tags/edit.html", gin.H{
		"Title": "Edit tag",
		"Tag":   *tag,
		"Form":  tagForm{Name: tag.Name},
	})
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Tag not found")
		return
	}

	ctx := c.Request.Context()
	tag, err := h.store.GetTag(ctx, id)
	if err != nil {
		failed(c, h.log, err, "Tag")
		return
	}

	var form tagForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "tags/edit.html", gin.H{
			"Title": "Edit tag",
			"Tag":   *tag,
			"Form":  form,
			"Error": missingFields,
		})
		return
	}

	if _, err := h.store.UpdateTag(ctx, id, form.Name); err != nil {
		if code, message, ok := formError(err); ok {
			if code == http.StatusConflict {
				message = duplicateTag(form.Name)
			}
			Render(c, code, "tags/edit.html", gin.H{
				"Title": "Edit tag",
				"Tag":   *tag,
				"Form":  form,
				"Error": message,
			})
			return
		}
		failed(c, h.log, err, "Tag")
		return
	}

	flash(c, "Tag updated.")
	c.Redirect(http.StatusFound, "/tags")
}

// Delete removes the tag from every post and then the tag itself.
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "Tag not found")
		return
	}

	if err := h.store.DeleteTag(c.Request.Context(), id); err != nil {
		failed(c, h.log, err, "Tag")
		return
	}

	flash(c, "Tag deleted.")
	c.Redirect(http.StatusFound, "/tags")
}
