package har

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Decode returns the body as text. Plain bodies are returned as recorded.
// Base64 bodies are decoded and, when the mime type names a non-UTF-8
// charset the decoder knows, transcoded to UTF-8.
func (c Content) Decode() (string, error) {
	if c.Text == "" {
		return "", nil
	}
	if !strings.EqualFold(c.Encoding, "base64") {
		return c.Text, nil
	}

	raw, err := base64.StdEncoding.DecodeString(c.Text)
	if err != nil {
		return "", fmt.Errorf("decode base64 content: %w", err)
	}
	return transcode(raw, charsetOf(c.MimeType))
}

func charsetOf(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func transcode(raw []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return string(raw), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		// Unknown charset labels fall back to the raw bytes.
		return string(raw), nil
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("transcode %s content: %w", charset, err)
	}
	return string(out), nil
}
