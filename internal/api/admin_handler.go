package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/songminho/ragconsole/internal/console"
	"github.com/songminho/ragconsole/internal/domain"
)

// AdminHandler serves the moderation console page and its actions.
type AdminHandler struct {
	console *console.AdminConsole
}

// NewAdminHandler creates a new admin page handler
func NewAdminHandler(adminConsole *console.AdminConsole) *AdminHandler {
	return &AdminHandler{console: adminConsole}
}

// RegisterRoutes registers the admin console routes
func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/admin", h.Page)
	r.POST("/admin/requests/:id/approve", h.Approve)
	r.POST("/admin/requests/:id/reject", h.Reject)
}

// Page refreshes both tables and renders the console. Query parameters
// set the queue filter before the refresh, mirroring a filter change.
func (h *AdminHandler) Page(c *gin.Context) {
	// A bare GET keeps the current filter so action redirects do not
	// reset it; submitting the filter form replaces it.
	if c.Request.URL.RawQuery != "" {
		h.console.SetFilter(domain.RequestFilter{
			Status: c.Query("status"),
			Reason: c.Query("reason"),
			Search: c.Query("q"),
		})
	}
	h.console.Refresh(c.Request.Context())

	html := console.RenderAdminPage(h.console.View())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Approve runs the approve action and returns to the console page.
func (h *AdminHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	h.console.Approve(c.Request.Context(), id, c.PostForm("code"))
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Reject runs the reject action and returns to the console page.
func (h *AdminHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	h.console.Reject(c.Request.Context(), id, c.PostForm("code"), c.PostForm("reason"))
	c.Redirect(http.StatusSeeOther, "/admin")
}
