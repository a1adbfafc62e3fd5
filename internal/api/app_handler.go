package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/songminho/ragconsole/internal/console"
)

// AppHandler serves the user chat console page and its actions.
type AppHandler struct {
	console *console.AppConsole
}

// NewAppHandler creates a new user console handler
func NewAppHandler(appConsole *console.AppConsole) *AppHandler {
	return &AppHandler{console: appConsole}
}

// RegisterRoutes registers the user console routes
func (h *AppHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/app", h.Page)
	r.GET("/app/docs/:name", h.OpenDoc)
	r.POST("/app/provider", h.SetProvider)
	r.POST("/app/settings", h.UpdateSettings)
	r.POST("/app/collections", h.SelectCollections)
	r.POST("/app/query", h.Query)
	r.POST("/app/reindex", h.Reindex)
	r.POST("/app/upload", h.Upload)
}

// Page runs the page-load sequence (health check, collections, docs) and
// renders the console.
func (h *AppHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	h.console.HealthCheck(ctx)
	h.console.LoadCollections(ctx)
	h.console.LoadDocs(ctx)
	h.render(c)
}

// OpenDoc fetches and renders one document, then shows the console.
func (h *AppHandler) OpenDoc(c *gin.Context) {
	h.console.OpenDoc(c.Request.Context(), c.Param("name"))
	h.render(c)
}

// SetProvider applies the provider change and its defaults.
func (h *AppHandler) SetProvider(c *gin.Context) {
	h.console.SetProvider(c.PostForm("provider"))
	c.Redirect(http.StatusSeeOther, "/app")
}

// UpdateSettings stores the model/key/base-URL overrides.
func (h *AppHandler) UpdateSettings(c *gin.Context) {
	h.console.UpdateSettings(c.PostForm("model"), c.PostForm("api_key"), c.PostForm("base_url"))
	c.Redirect(http.StatusSeeOther, "/app")
}

// SelectCollections applies the primary and secondary selections; the
// console clears a secondary that duplicates the primary.
func (h *AppHandler) SelectCollections(c *gin.Context) {
	h.console.SelectPrimary(c.PostForm("collection"))
	h.console.SelectSecondary(c.PostForm("collection2"))
	c.Redirect(http.StatusSeeOther, "/app")
}

// Query sends a question and renders the updated transcript.
func (h *AppHandler) Query(c *gin.Context) {
	h.console.SendQuestion(c.Request.Context(), c.PostForm("question"))
	h.render(c)
}

// Reindex rebuilds the primary collection's index.
func (h *AppHandler) Reindex(c *gin.Context) {
	h.console.Reindex(c.Request.Context())
	h.render(c)
}

// Upload submits a new document upload request.
func (h *AppHandler) Upload(c *gin.Context) {
	h.console.SubmitUploadRequest(c.Request.Context(), console.UploadDraft{
		SourceName: c.PostForm("source_name"),
		Country:    c.PostForm("country"),
		DocType:    c.PostForm("doc_type"),
		Content:    c.PostForm("content"),
	})
	h.render(c)
}

func (h *AppHandler) render(c *gin.Context) {
	html := console.RenderAppPage(h.console.View())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
