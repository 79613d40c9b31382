package whatsapp

import (
	"strings"
	"unicode"
)

type IconPosition string

const (
	BottomRight IconPosition = "bottom-right"
	BottomLeft  IconPosition = "bottom-left"
	TopRight    IconPosition = "top-right"
	TopLeft     IconPosition = "top-left"
)

// legacy storefront configs store the CSS class instead of the bare value
const legacyPositionPrefix = "whatsapp-"

// PlaceholderPhone is the sentinel number meaning "not configured".
const PlaceholderPhone = "+541234567890"

// WidgetConfig is the resolved widget configuration. Treat it as read-only
// once returned by a Resolver.
type WidgetConfig struct {
	Phone         string       `json:"phone"`
	Message       string       `json:"message"`
	Enabled       bool         `json:"enabled"`
	IconPosition  IconPosition `json:"icon_position"`
	UseCustomIcon bool         `json:"use_custom_icon"`
	CustomIconURL string       `json:"custom_icon_url"`
}

// DefaultConfig holds the fallback values used when nothing else is known.
var DefaultConfig = WidgetConfig{
	Phone:        PlaceholderPhone,
	Message:      "Hi! I have a question.",
	Enabled:      false,
	IconPosition: BottomRight,
}

// Class returns the CSS class carrying the position.
func (p IconPosition) Class() string {
	return legacyPositionPrefix + string(NormalizeIconPosition(string(p)))
}

// NormalizeIconPosition maps any input onto one of the four positions.
func NormalizeIconPosition(position string) IconPosition {
	switch p := IconPosition(strings.TrimPrefix(position, legacyPositionPrefix)); p {
	case BottomRight, BottomLeft, TopRight, TopLeft:
		return p
	}
	return BottomRight
}

// CleanPhoneNumber removes whitespace, dashes and any leading "+" run.
func CleanPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, phone)
	return strings.TrimLeft(cleaned, "+")
}

// normalizePhone cleans phone and drops it entirely when anything other than
// digits is left over.
func normalizePhone(phone string) string {
	cleaned := CleanPhoneNumber(phone)
	if !isDigits(cleaned) {
		return ""
	}
	return cleaned
}

// DigitsOnly keeps only the ASCII digits of s.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidPhone rejects empty numbers, the placeholder and anything too short
// to be a real number.
func IsValidPhone(phone string) bool {
	return phone != "" && phone != PlaceholderPhone && len(phone) > 5
}
