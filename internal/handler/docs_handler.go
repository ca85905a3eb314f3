package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

// DocsHandler serves the static documentation page and public assets.
type DocsHandler struct {
	docsPath  string
	staticDir string
}

// NewDocsHandler constructs DocsHandler.
func NewDocsHandler(docsPath, staticDir string) *DocsHandler {
	return &DocsHandler{docsPath: docsPath, staticDir: staticDir}
}

// Docs godoc
// @Summary API documentation page
// @Tags Docs
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /docs [get]
func (h *DocsHandler) Docs(c *gin.Context) {
	if !isRegularFile(h.docsPath) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "documentation page not found"))
		return
	}
	c.File(h.docsPath)
}

// Fallback serves a file from the public directory for unmatched GET and HEAD
// requests and answers everything else with a JSON 404.
func (h *DocsHandler) Fallback(c *gin.Context) {
	if h.staticDir != "" && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
		// path.Clean on a rooted path strips any ".." segments.
		target := filepath.Join(h.staticDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if isRegularFile(target) {
			c.File(target)
			return
		}
	}
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
}

func isRegularFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
