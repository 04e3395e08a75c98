// Package contenttype classifies HAR mime types into the broad body
// categories harscope knows how to query.
package contenttype

import (
	"mime"
	"strings"
	"unicode/utf8"
)

// Category represents a broad content-type classification.
type Category string

const (
	JSON   Category = "json"
	XML    Category = "xml"
	HTML   Category = "html"
	Script Category = "script"
	Form   Category = "form"
	Text   Category = "text"
	Binary Category = "binary"
)

// mediaType strips parameters (charset, boundary) and lowercases. Malformed
// values are lowercased as-is.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// Classify returns the broad content category for a content-type value.
// Returns Binary for empty and unrecognized values.
func Classify(contentType string) Category {
	if contentType == "" {
		return Binary
	}
	mt := mediaType(contentType)

	switch {
	case strings.Contains(mt, "json"):
		return JSON
	case mt == "text/html" || mt == "application/xhtml+xml":
		return HTML
	case strings.Contains(mt, "xml"):
		return XML
	case strings.Contains(mt, "javascript") || strings.Contains(mt, "ecmascript"):
		return Script
	case mt == "application/x-www-form-urlencoded":
		return Form
	case strings.HasPrefix(mt, "text/"):
		return Text
	default:
		return Binary
	}
}

// IsHTML reports whether the content type is an HTML document.
func IsHTML(contentType string) bool {
	return Classify(contentType) == HTML
}

// IsJSON returns true if the content type indicates JSON (case-insensitive).
func IsJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// IsBinary reports whether a body should be treated as binary. Known text
// categories are never binary; for everything else the body is checked for
// valid UTF-8, since HAR exporters often omit or misreport mime types.
func IsBinary(contentType string, body string) bool {
	if Classify(contentType) != Binary {
		return false
	}
	mt := mediaType(contentType)
	if strings.HasPrefix(mt, "image/") || strings.HasPrefix(mt, "audio/") ||
		strings.HasPrefix(mt, "video/") || strings.HasPrefix(mt, "font/") {
		return true
	}
	return !utf8.ValidString(body)
}
