package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index sends visitors to the user listing.
func (h *HomeHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/users")
}
