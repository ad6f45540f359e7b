package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chad-schroeder/blogly/internal/middleware"
	"github.com/chad-schroeder/blogly/internal/store"
	"github.com/chad-schroeder/blogly/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render helper to inject common variables like pending flash messages
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// No session yet when a panic is recovered ahead of the session middleware
	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		if flashes := session.Flashes(); len(flashes) > 0 {
			obj["Flashes"] = flashes
			_ = session.Save()
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Title":   http.StatusText(code),
		"Code":    code,
		"Message": message,
	})
}

// flash queues a message for the next rendered page.
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

func idParam(c *gin.Context) (uint, bool) {
	return utils.ParseID(c.Param("id"))
}

// failed answers a store error that the caller has no special handling for:
// missing rows become 404, anything else is logged and becomes 500.
func failed(c *gin.Context, log *zap.Logger, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		RenderError(c, http.StatusNotFound, what+" not found")
		return
	}

	_ = c.Error(err)
	log.Error("request failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
	)
	RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
}

// formError turns a rejected submission into a status and a message for the form.
func formError(err error) (int, string, bool) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, fmt.Sprintf("%s %s.", fieldLabels[verr.Field], verr.Reason), true
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, "", true
	default:
		return 0, "", false
	}
}

var fieldLabels = map[string]string{
	"first_name": "First name",
	"last_name":  "Last name",
	"title":      "Title",
	"content":    "Content",
	"name":       "Tag name",
}

const missingFields = "Please fill in every required field."
