package widget

import (
	"net/url"
	"strings"
)

const waBaseURL = "https://wa.me/"

// ActionLink builds the wa.me deep link, adding the prefilled text when a
// message is present.
func ActionLink(phone, message string) string {
	link := waBaseURL + phone
	if message != "" {
		link += "?text=" + encodeURIComponent(message)
	}
	return link
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent matches the browser function: spaces become %20 and the
// marks !'()* stay literal.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
