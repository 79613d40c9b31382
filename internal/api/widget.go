package api

import (
	"bytes"
	"net/http"

	"storefront-whatsapp-contact/internal/metrics"
	"storefront-whatsapp-contact/internal/whatsapp"
	"storefront-whatsapp-contact/internal/widget"
	"storefront-whatsapp-contact/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WidgetHandler struct {
	Resolver    *whatsapp.Resolver
	Controllers map[widget.Mode]*widget.Controller
	DefaultMode widget.Mode
	Hub         *ws.Hub
	Metrics     *metrics.Metrics
}

func NewWidgetHandler(resolver *whatsapp.Resolver, opts widget.Options, hub *ws.Hub, m *metrics.Metrics) *WidgetHandler {
	controllers := make(map[widget.Mode]*widget.Controller, 2)
	for _, mode := range []widget.Mode{widget.ModeButton, widget.ModePopup} {
		modeOpts := opts
		modeOpts.Mode = mode
		controllers[mode] = widget.NewController(resolver, modeOpts)
	}
	defaultMode := opts.Mode
	if defaultMode == "" {
		defaultMode = widget.ModePopup
	}
	return &WidgetHandler{
		Resolver:    resolver,
		Controllers: controllers,
		DefaultMode: defaultMode,
		Hub:         hub,
		Metrics:     m,
	}
}

// Render returns the widget markup for a page, or 204 when the widget must
// not appear there.
func (h *WidgetHandler) Render(c *gin.Context) {
	mode := h.DefaultMode
	if m := c.Query("mode"); m != "" {
		mode = widget.ParseMode(m)
	}

	page := widget.Page{
		Path:      c.DefaultQuery("path", "/"),
		HasWidget: c.Query("existing") == "1" || c.Query("existing") == "true",
	}
	if phone, message, text := c.Query("phone"), c.Query("message"), c.Query("text"); phone != "" || message != "" || text != "" {
		page.Host = &widget.HostElement{Phone: phone, Message: message, Text: text}
	}

	mounted, reason := h.Controllers[mode].Mount(c.Request.Context(), page)
	if h.Metrics != nil {
		h.Metrics.WidgetRendered(string(mode), string(reason))
	}
	c.Header("X-Widget-Reason", string(reason))
	if mounted == nil {
		zap.S().Debugw("widget not rendered", "path", page.Path, "mode", mode, "reason", reason)
		c.Status(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := widget.Render(&buf, mounted.Root); err != nil {
		zap.S().Errorw("render widget", "error", err)
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetConfig returns the resolved remote configuration.
func (h *WidgetHandler) GetConfig(c *gin.Context) {
	cfg := h.Resolver.Resolve(c.Request.Context())
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "remote configuration unavailable"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// RefreshConfig drops the cache, resolves again and pushes the result to
// connected pages.
func (h *WidgetHandler) RefreshConfig(c *gin.Context) {
	h.Resolver.Reset()
	cfg := h.Resolver.Resolve(c.Request.Context())
	if h.Hub != nil {
		h.Hub.NotifyConfig(cfg)
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg, "endpoint": h.Resolver.Endpoint()})
}
