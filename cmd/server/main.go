package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront-whatsapp-contact/internal/api"
	"storefront-whatsapp-contact/internal/config"
	"storefront-whatsapp-contact/internal/metrics"
	"storefront-whatsapp-contact/internal/storefront"
	"storefront-whatsapp-contact/internal/whatsapp"
	"storefront-whatsapp-contact/internal/widget"
	"storefront-whatsapp-contact/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	initLogger(cfg.LogMode)
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	endpoint := cfg.GraphQLEndpoint
	if endpoint == "" && cfg.StorefrontConfig != "" {
		stored, err := storefront.ReadEndpoint(cfg.StorefrontConfig)
		if err != nil {
			zap.S().Warnw("read storefront config", "path", cfg.StorefrontConfig, "error", err)
		}
		endpoint = stored
	}
	if endpoint == "" {
		zap.S().Warn("No GraphQL endpoint configured, widget renders from defaults only")
	}

	resolver := whatsapp.NewResolver(whatsapp.NewClient(cfg.FetchTimeout), endpoint, whatsapp.WithObserver(m))

	hub := ws.NewHub()
	go hub.Run(ctx)

	if cfg.StorefrontConfig != "" {
		watcher := storefront.NewWatcher(cfg.StorefrontConfig, func(endpoint string) {
			if cfg.GraphQLEndpoint != "" {
				return
			}
			resolver.SetEndpoint(endpoint)
			hub.NotifyConfig(resolver.Resolve(ctx))
		})
		if err := watcher.Start(ctx); err != nil {
			zap.S().Warnw("storefront config watcher disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	widgetHandler := api.NewWidgetHandler(resolver, widget.Options{
		Mode:        widget.ParseMode(cfg.WidgetMode),
		HiddenPaths: cfg.HiddenPaths,
		IconButton:  cfg.DefaultIconButton,
		IconPopup:   cfg.DefaultIconPopup,
	}, hub, m)

	r := api.NewRouter(api.RouterConfig{
		AllowedOrigin: cfg.AllowedOrigin,
		Widget:        widgetHandler,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorw("shutdown", "error", err)
		}
	}()

	zap.S().Infow("Server starting", "port", cfg.Port, "mode", cfg.WidgetMode, "endpoint", endpoint)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.S().Fatalf("Failed to run server: %v", err)
	}
}

func initLogger(mode string) {
	var zapConfig zap.Config
	if mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	logger, err := zapConfig.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
