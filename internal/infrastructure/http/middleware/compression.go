package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	encodingBrotli = "br"
	encodingGzip   = "gzip"
)

// bufferedWriter holds the body until the handler chain returns so the
// encoding can be chosen from the final size and content type
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

func (w *bufferedWriter) Written() bool {
	return w.buf.Len() > 0 || w.ResponseWriter.Written()
}

func (w *bufferedWriter) Size() int {
	if w.buf.Len() > 0 {
		return w.buf.Len()
	}
	return w.ResponseWriter.Size()
}

// Compression encodes text and JSON responses with brotli, or gzip when the
// client does not accept brotli. Bodies under the configured minimum size go
// out unchanged.
func (m *Middleware) Compression() gin.HandlerFunc {
	minSize := m.config.Server.CompressionMinSize

	return func(c *gin.Context) {
		if !m.config.Server.EnableCompression {
			c.Next()
			return
		}

		encoding := negotiateEncoding(c.GetHeader("Accept-Encoding"))
		if encoding == "" {
			c.Next()
			return
		}

		original := c.Writer
		bw := &bufferedWriter{ResponseWriter: original}
		c.Writer = bw
		c.Next()
		c.Writer = original

		body := bw.buf.Bytes()
		if len(body) == 0 {
			return
		}

		h := original.Header()
		if len(body) < minSize || original.Written() || h.Get("Content-Encoding") != "" || !compressible(h.Get("Content-Type")) {
			_, _ = original.Write(body)
			return
		}

		encoded, err := encode(encoding, body)
		if err != nil {
			m.logger.Warn("Response compression failed", zap.String("encoding", encoding), zap.Error(err))
			_, _ = original.Write(body)
			return
		}

		h.Set("Content-Encoding", encoding)
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")
		_, _ = original.Write(encoded)
	}
}

func encode(encoding string, body []byte) ([]byte, error) {
	var out bytes.Buffer
	var w io.WriteCloser
	if encoding == encodingBrotli {
		w = brotli.NewWriterLevel(&out, brotli.DefaultCompression)
	} else {
		w = gzip.NewWriter(&out)
	}

	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// negotiateEncoding picks br over gzip from an Accept-Encoding header,
// ignoring codings sent with q=0
func negotiateEncoding(header string) string {
	gz := false
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(part, ";")
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				continue
			}
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case encodingBrotli:
			return encodingBrotli
		case encodingGzip:
			gz = true
		}
	}
	if gz {
		return encodingGzip
	}
	return ""
}

func compressible(contentType string) bool {
	return strings.HasPrefix(contentType, "text/") || strings.Contains(contentType, "json")
}
