package response // import "github.com/isidore-books/isidore/internal/http/response"

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// Builder accumulates status, headers and body before writing a response,
// negotiating brotli compression from the Accept-Encoding header.
type Builder struct {
	w          http.ResponseWriter
	r          *http.Request
	statusCode int
	headers    map[string]string
	body       interface{}
}

// New creates a response builder with the common security headers set.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:          w,
		r:          r,
		statusCode: http.StatusOK,
		headers: map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
		},
	}
}

func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

func (b *Builder) WithBody(body interface{}) *Builder {
	b.body = body
	return b
}

func (b *Builder) Write() {
	if b.body == nil {
		b.writeHeaders()
		return
	}

	switch body := b.body.(type) {
	case []byte:
		b.compress(body)
	case string:
		b.compress([]byte(body))
	case io.Reader:
		// Streaming bodies are not compressed.
		b.writeHeaders()
		io.Copy(b.w, body)
	}
}

func (b *Builder) writeHeaders() {
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}
	b.w.WriteHeader(b.statusCode)
}

func (b *Builder) compress(data []byte) {
	acceptEncoding := b.r.Header.Get("Accept-Encoding")
	if strings.Contains(acceptEncoding, "br") && len(data) > 1024 {
		b.headers["Content-Encoding"] = "br"
		b.writeHeaders()
		bw := brotli.NewWriter(b.w)
		defer bw.Close()
		bw.Write(data)
		return
	}

	b.writeHeaders()
	b.w.Write(data)
}
