package render

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/chad-schroeder/blogly/internal/models"
	"github.com/chad-schroeder/blogly/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// Views lists every page template; handlers render them by these names.
var Views = []string{
	"users/list.html",
	"users/new.html",
	"users/detail.html",
	"users/edit.html",
	"posts/new.html",
	"posts/detail.html",
	"posts/edit.html",
	"tags/list.html",
	"tags/new.html",
	"tags/detail.html",
	"tags/edit.html",
	"error.html",
}

const defaultAvatar = "/static/img/default-avatar.svg"

// FuncMap holds the helpers available to every view.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"avatar": func(u models.User) string {
			if a := u.Avatar(); a != "" {
				return a
			}
			return defaultAvatar
		},
		"formatTime": func(t time.Time) string {
			return t.Format("Mon Jan 2, 2006, 3:04 PM")
		},
		"markdown": utils.RenderMarkdown,
		"hasTag": func(tags []models.Tag, id uint) bool {
			for _, t := range tags {
				if t.ID == id {
					return true
				}
			}
			return false
		},
	}
}

// Load assembles each view with the shared layouts, includes and components.
func Load(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	var shared []string
	for _, dir := range []string{"layouts", "includes", "components"} {
		files, err := filepath.Glob(filepath.Join(templatesDir, dir, "*.html"))
		if err != nil {
			return nil, err
		}
		shared = append(shared, files...)
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no layouts found in %s", templatesDir)
	}

	funcMap := FuncMap()
	for _, view := range Views {
		files := append(append([]string{}, shared...), filepath.Join(templatesDir, "views", view))
		r.AddFromFilesFuncs(view, funcMap, files...)
	}
	return r, nil
}
