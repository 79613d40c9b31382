// Package widget decides whether the WhatsApp contact widget renders on a
// page, builds its node tree and drives the popup state machine.
package widget

import (
	"context"
	"strings"

	"storefront-whatsapp-contact/internal/whatsapp"
)

type Mode string

const (
	// ModeButton renders a floating wa.me link and nothing else.
	ModeButton Mode = "button"
	// ModePopup renders a floating button that opens a modal popup.
	ModePopup Mode = "popup"
)

// ParseMode falls back to ModePopup for unknown values.
func ParseMode(s string) Mode {
	if Mode(s) == ModeButton {
		return ModeButton
	}
	return ModePopup
}

// Reason explains the outcome of Mount.
type Reason string

const (
	ReasonMounted        Reason = "mounted"
	ReasonSuppressedPath Reason = "suppressed_path"
	ReasonAlreadyMounted Reason = "already_mounted"
	ReasonDisabled       Reason = "disabled"
	ReasonInvalidPhone   Reason = "invalid_phone"
)

// Hardcoded copy.
const (
	buttonLabel    = "Chatear por WhatsApp"
	popupOpenLabel = "Abrir chat de WhatsApp"
	popupTitle     = "Chatea con nosotros"
	closeLabel     = "Cerrar"
	closeGlyph     = "×"
	defaultPrompt  = "¿Tienes alguna pregunta? Estamos aquí para ayudarte."
	linkText       = "Abrir WhatsApp"
)

// ConfigSource resolves the remote configuration; nil means none available.
type ConfigSource interface {
	Resolve(ctx context.Context) *whatsapp.WidgetConfig
}

// HostElement carries the authored block's fallback values: its data-phone
// and data-message attributes and its inner text.
type HostElement struct {
	Phone   string
	Message string
	Text    string
}

// Page describes where the widget is being mounted.
type Page struct {
	Path string
	Host *HostElement
	// HasWidget reports a widget instance already present on the page.
	HasWidget bool
	// Document receives popup side effects; nil discards them.
	Document Document
}

// Mounted is a widget ready to be rendered.
type Mounted struct {
	Mode   Mode
	Config whatsapp.WidgetConfig
	Link   string
	Root   *Node
	// Popup is nil in ModeButton.
	Popup *Popup
}

type Options struct {
	Mode        Mode
	HiddenPaths []string
	// IconButton and IconPopup are the default icon paths per mode.
	IconButton string
	IconPopup  string
}

type Controller struct {
	source ConfigSource
	opts   Options
}

func NewController(source ConfigSource, opts Options) *Controller {
	if opts.Mode == "" {
		opts.Mode = ModePopup
	}
	if opts.HiddenPaths == nil {
		opts.HiddenPaths = []string{"/checkout", "/cart"}
	}
	if opts.IconButton == "" {
		opts.IconButton = "/icons/whatsapp-contact.svg"
	}
	if opts.IconPopup == "" {
		opts.IconPopup = "/icons/whatsapp.svg"
	}
	return &Controller{source: source, opts: opts}
}

func (c *Controller) Mode() Mode {
	return c.opts.Mode
}

// Hidden reports whether path falls under a suppression prefix.
func (c *Controller) Hidden(path string) bool {
	for _, prefix := range c.opts.HiddenPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Mount resolves configuration and builds the widget for page. It returns nil
// and the reason when nothing should render.
func (c *Controller) Mount(ctx context.Context, page Page) (*Mounted, Reason) {
	if c.Hidden(page.Path) {
		return nil, ReasonSuppressedPath
	}
	if page.HasWidget {
		return nil, ReasonAlreadyMounted
	}

	remote := c.source.Resolve(ctx)
	if remote != nil && !remote.Enabled {
		return nil, ReasonDisabled
	}

	cfg := c.merge(remote, page.Host)
	if !whatsapp.IsValidPhone(cfg.Phone) {
		return nil, ReasonInvalidPhone
	}

	m := &Mounted{
		Mode:   c.opts.Mode,
		Config: cfg,
		Link:   ActionLink(cfg.Phone, cfg.Message),
	}
	if c.opts.Mode == ModeButton {
		m.Root = c.buildButton(cfg, m.Link)
	} else {
		m.Root = c.buildPopup(cfg, m.Link)
		m.Popup = NewPopup(page.Document)
	}
	return m, ReasonMounted
}

// merge applies remote > host element > defaults, field by field.
func (c *Controller) merge(remote *whatsapp.WidgetConfig, host *HostElement) whatsapp.WidgetConfig {
	cfg := c.defaults()
	cfg.Enabled = true

	if c.opts.Mode == ModePopup && host != nil {
		phone := host.Phone
		if phone == "" {
			phone = host.Text
		}
		if digits := whatsapp.DigitsOnly(phone); digits != "" {
			cfg.Phone = digits
		}
		if host.Message != "" {
			cfg.Message = host.Message
		}
	}

	if remote == nil {
		return cfg
	}
	if remote.Phone != "" {
		cfg.Phone = remote.Phone
	}
	if remote.Message != "" {
		cfg.Message = remote.Message
	}
	if remote.IconPosition != "" {
		cfg.IconPosition = whatsapp.NormalizeIconPosition(string(remote.IconPosition))
	}
	if remote.UseCustomIcon && remote.CustomIconURL != "" {
		cfg.UseCustomIcon = true
		cfg.CustomIconURL = remote.CustomIconURL
	}
	return cfg
}

// defaults differ per mode: the page initializer falls back to the shared
// defaults, the authored block to its own attributes only.
func (c *Controller) defaults() whatsapp.WidgetConfig {
	if c.opts.Mode == ModeButton {
		return whatsapp.DefaultConfig
	}
	return whatsapp.WidgetConfig{IconPosition: whatsapp.DefaultConfig.IconPosition}
}

func (c *Controller) iconSrc(cfg whatsapp.WidgetConfig) string {
	if cfg.UseCustomIcon && cfg.CustomIconURL != "" {
		return cfg.CustomIconURL
	}
	if c.opts.Mode == ModeButton {
		return c.opts.IconButton
	}
	return c.opts.IconPopup
}

func decorativeImg(src string) *Node {
	return El("img", A("src", src), A("alt", ""), A("aria-hidden", "true"))
}

func wrapper(mode Mode) *Node {
	return El("div", A("class", "whatsapp"), A("data-wa-mode", string(mode)))
}

func (c *Controller) buildButton(cfg whatsapp.WidgetConfig, link string) *Node {
	button := El("a",
		A("id", ButtonID),
		A("class", "whatsapp-fab "+cfg.IconPosition.Class()),
		A("href", link),
		A("target", "_blank"),
		A("rel", "noopener noreferrer"),
		A("aria-label", buttonLabel),
	).Append(decorativeImg(c.iconSrc(cfg)))

	return wrapper(ModeButton).Append(button)
}

func (c *Controller) buildPopup(cfg whatsapp.WidgetConfig, link string) *Node {
	icon := c.iconSrc(cfg)

	button := El("button",
		A("id", ButtonID),
		A("type", "button"),
		A("class", "whatsapp-fab "+cfg.IconPosition.Class()),
		A("aria-label", popupOpenLabel),
		A("aria-expanded", "false"),
		A("aria-controls", OverlayID),
	).Append(decorativeImg(icon)).On("click", ActionOpen)

	title := El("h3", A("id", TitleID), A("class", "whatsapp-popup-title")).
		Append(decorativeImg(icon), Text(popupTitle))

	closeBtn := El("button",
		A("id", CloseID),
		A("type", "button"),
		A("class", "whatsapp-popup-close"),
		A("aria-label", closeLabel),
	).Append(Text(closeGlyph)).On("click", ActionClose)

	prompt := cfg.Message
	if prompt == "" {
		prompt = defaultPrompt
	}

	content := El("div", A("class", "whatsapp-popup-content")).Append(
		El("p", A("class", "whatsapp-popup-message")).Append(Text(prompt)),
		El("div", A("class", "whatsapp-popup-actions")).Append(
			El("a",
				A("class", "whatsapp-popup-link"),
				A("href", link),
				A("target", "_blank"),
				A("rel", "noopener"),
			).Append(decorativeImg(icon), Text(linkText)),
		),
	)

	panel := El("div", A("class", "whatsapp-popup")).Append(
		El("div", A("class", "whatsapp-popup-header")).Append(title, closeBtn),
		content,
	)

	overlay := El("div",
		A("id", OverlayID),
		A("class", "whatsapp-popup-overlay"),
		A("role", "dialog"),
		A("aria-modal", "true"),
		A("aria-labelledby", TitleID),
	).Append(panel).On("click", ActionBackdrop)

	return wrapper(ModePopup).Append(button, overlay)
}
