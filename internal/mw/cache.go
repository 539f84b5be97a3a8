package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cacheEntry struct {
	code   int
	header http.Header
	body   []byte
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cached replays successful GET responses from memory for the given
// TTL, keyed by request URI. Replayed responses carry an "X-Cache: HIT"
// header. Only 2xx responses are stored.
func Cached(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, ok := store.Get(key); ok {
			entry := hit.(cacheEntry)
			head := c.Writer.Header()
			for k, v := range entry.header {
				head[k] = v
			}
			head.Set("X-Cache", "HIT")
			c.Writer.WriteHeader(entry.code)
			c.Writer.Write(entry.body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw

		c.Next()

		if code := cw.Status(); code >= http.StatusOK && code < http.StatusMultipleChoices {
			store.Set(key, cacheEntry{
				code:   code,
				header: cw.Header().Clone(),
				body:   cw.buf.Bytes(),
			}, ttl)
		}
	}
}
