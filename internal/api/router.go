package api

import (
	"io/fs"
	"net/http"

	"storefront-whatsapp-contact/internal/assets"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigin string
	Widget        *WidgetHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORS(cfg.AllowedOrigin))

	static := assets.FS()
	icons, err := fs.Sub(static, "icons")
	if err != nil {
		panic(err)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Widget Routes
	widgetGroup := r.Group("/widget")
	{
		widgetGroup.GET("", cfg.Widget.Render)
		widgetGroup.GET("/config", cfg.Widget.GetConfig)
		widgetGroup.POST("/config/refresh", cfg.Widget.RefreshConfig)
	}

	// Assets
	r.StaticFS("/icons", http.FS(icons))
	r.StaticFileFS("/blocks/whatsapp-contact/whatsapp-contact.css", "blocks/whatsapp-contact/whatsapp-contact.css", http.FS(static))
	r.StaticFileFS("/scripts/whatsapp-widget.js", "scripts/whatsapp-widget.js", http.FS(static))

	if cfg.Widget.Hub != nil {
		r.GET("/ws", gin.WrapF(cfg.Widget.Hub.ServeWs))
	}
	if cfg.Widget.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Widget.Metrics.Handler()))
	}

	return r
}
