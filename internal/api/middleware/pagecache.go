package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pulsefeed/pulsefeed/pkg/cache"
	"github.com/pulsefeed/pulsefeed/pkg/logger"
)

// cachedPage is what gets stored: the rendered body plus its content type.
type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
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

// PageCache serves a previously rendered snapshot of the page for ttl,
// keyed by path and query, not per user. There is no invalidation on
// write: content created inside the window stays invisible until the
// entry expires.
func PageCache(store cache.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := "pagecache:" + c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			key += "?" + q
		}

		ctx := c.Request.Context()
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var page cachedPage
			if err := json.Unmarshal(data, &page); err == nil {
				c.Data(http.StatusOK, page.ContentType, page.Body)
				c.Abort()
				return
			}
		} else if err != nil {
			logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		page := cachedPage{ContentType: c.Writer.Header().Get("Content-Type"), Body: cw.buf.Bytes()}
		data, err := json.Marshal(page)
		if err != nil {
			return
		}
		if err := store.Set(ctx, key, data, ttl); err != nil {
			logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
