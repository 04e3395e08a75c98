package har

import "strings"

// Archive is a parsed HAR document.
type Archive struct {
	Path    string  `json:"-"`
	Version string  `json:"version,omitempty"`
	Creator Creator `json:"creator"`
	Entries []Entry `json:"entries"`
}

// Creator identifies the tool that recorded the archive.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Entry is one recorded request/response exchange.
type Entry struct {
	StartedDateTime string   `json:"startedDateTime,omitempty"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
}

// Request is the request half of an entry.
type Request struct {
	Method   string      `json:"method"`
	URL      string      `json:"url"`
	Headers  []NameValue `json:"headers,omitempty"`
	PostData *PostData   `json:"postData,omitempty"`
}

// Response is the response half of an entry.
type Response struct {
	Status  int         `json:"status"`
	Headers []NameValue `json:"headers,omitempty"`
	Content Content     `json:"content"`
}

// NameValue is a header or query parameter.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PostData is the request body as recorded by the browser.
type PostData struct {
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Content is the response body. Text is base64 when Encoding is "base64".
type Content struct {
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// PostDataText returns the request body text and whether the request
// carries a postData object. The text may be empty when it does.
func (e *Entry) PostDataText() (string, bool) {
	if e.Request.PostData == nil {
		return "", false
	}
	return e.Request.PostData.Text, true
}

// ResponseText returns the decoded response body, or "" when absent.
// Bodies that fail to decode are returned as recorded.
func (e *Entry) ResponseText() string {
	text, err := e.Response.Content.Decode()
	if err != nil {
		return e.Response.Content.Text
	}
	return text
}

// RequestContentType returns the request content type, preferring the post
// data mime type over the Content-Type header.
func (e *Entry) RequestContentType() string {
	if e.Request.PostData != nil && e.Request.PostData.MimeType != "" {
		return e.Request.PostData.MimeType
	}
	return headerValue(e.Request.Headers, "content-type")
}

// ResponseContentType returns the response content type, preferring the
// content mime type over the Content-Type header.
func (e *Entry) ResponseContentType() string {
	if e.Response.Content.MimeType != "" {
		return e.Response.Content.MimeType
	}
	return headerValue(e.Response.Headers, "content-type")
}

func headerValue(headers []NameValue, lowerName string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, lowerName) {
			return h.Value
		}
	}
	return ""
}
