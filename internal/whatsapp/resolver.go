package whatsapp

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const storeConfigQuery = `
  query GetWhatsAppConfig {
    storeConfig {
      whatsapp_phone
      whatsapp_message
      whatsapp_enabled
      whatsapp_icon_position
      whatsapp_use_custom_icon
      whatsapp_custom_icon_url
    }
  }
`

// rawStoreConfig keeps every field loosely typed; storefronts disagree on
// whether phones are strings or numbers.
type rawStoreConfig struct {
	Phone         any `json:"whatsapp_phone"`
	Message       any `json:"whatsapp_message"`
	Enabled       any `json:"whatsapp_enabled"`
	IconPosition  any `json:"whatsapp_icon_position"`
	UseCustomIcon any `json:"whatsapp_use_custom_icon"`
	CustomIconURL any `json:"whatsapp_custom_icon_url"`
}

type storeConfigData struct {
	StoreConfig *rawStoreConfig `json:"storeConfig"`
}

var errNoStoreConfig = errors.New("response has no storeConfig")

// Observer receives resolver events. internal/metrics implements it.
type Observer interface {
	FetchDone(ok bool)
	CacheHit()
}

type nopObserver struct{}

func (nopObserver) FetchDone(bool) {}
func (nopObserver) CacheHit()      {}

// Resolver fetches the widget configuration once and keeps it until Reset.
type Resolver struct {
	client   *Client
	observer Observer
	group    singleflight.Group

	mu       sync.RWMutex
	endpoint string
	cached   *WidgetConfig
	// generation is bumped by Reset so an in-flight fetch started before the
	// reset cannot repopulate the cache.
	generation uint64
}

type ResolverOption func(*Resolver)

func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

func NewResolver(client *Client, endpoint string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		client:   client,
		endpoint: endpoint,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the cached configuration, fetching it on first use. It
// returns nil when no remote configuration is available; failures are logged
// and never cached.
func (r *Resolver) Resolve(ctx context.Context) *WidgetConfig {
	if cfg := r.Cached(); cfg != nil {
		r.observer.CacheHit()
		return cfg
	}

	ch := r.group.DoChan("storeConfig", func() (any, error) {
		r.mu.RLock()
		endpoint, gen, cached := r.endpoint, r.generation, r.cached
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		// shared by every waiter: only the client timeout bounds it
		cfg, err := r.fetch(context.WithoutCancel(ctx), endpoint)
		r.observer.FetchDone(err == nil)
		if err != nil {
			zap.S().Warnw("whatsapp config unavailable", "endpoint", endpoint, "error", err)
			return (*WidgetConfig)(nil), nil
		}

		r.mu.Lock()
		if r.generation == gen {
			r.cached = cfg
		}
		r.mu.Unlock()
		return cfg, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*WidgetConfig)
	case <-ctx.Done():
		return nil
	}
}

// Cached returns the cached configuration without fetching.
func (r *Resolver) Cached() *WidgetConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cached
}

// Reset drops the cached configuration so the next Resolve fetches again.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cached = nil
	r.generation++
	r.mu.Unlock()
}

// Endpoint returns the endpoint currently queried.
func (r *Resolver) Endpoint() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.endpoint
}

// SetEndpoint switches endpoints and drops the cache when it changed.
func (r *Resolver) SetEndpoint(endpoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.endpoint == endpoint {
		return
	}
	r.endpoint = endpoint
	r.cached = nil
	r.generation++
}

func (r *Resolver) fetch(ctx context.Context, endpoint string) (*WidgetConfig, error) {
	var data storeConfigData
	if err := r.client.Query(ctx, endpoint, storeConfigQuery, &data); err != nil {
		return nil, err
	}
	if data.StoreConfig == nil {
		return nil, errNoStoreConfig
	}
	return normalize(data.StoreConfig), nil
}

func normalize(raw *rawStoreConfig) *WidgetConfig {
	position := cast.ToString(raw.IconPosition)
	if position == "" {
		position = string(DefaultConfig.IconPosition)
	}

	// anything but a literal false keeps the widget enabled
	enabled := true
	if b, ok := raw.Enabled.(bool); ok && !b {
		enabled = false
	}
	useCustomIcon, _ := raw.UseCustomIcon.(bool)

	return &WidgetConfig{
		Phone:         normalizePhone(cast.ToString(raw.Phone)),
		Message:       cast.ToString(raw.Message),
		Enabled:       enabled,
		IconPosition:  NormalizeIconPosition(position),
		UseCustomIcon: useCustomIcon,
		CustomIconURL: cast.ToString(raw.CustomIconURL),
	}
}
