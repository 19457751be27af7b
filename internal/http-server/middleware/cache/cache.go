// Package cache is a redis-backed response cache for GET endpoints. Cached
// entries are namespaced by the first path segment; a successful write
// request purges its namespace so reads never serve documents that were
// mutated through this process.
package cache

import (
	"bytes"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// namespace is the first path segment, e.g. "events" for /events/{id}.
func namespace(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

func key(r *http.Request) string {
	ns := namespace(r.URL.Path)
	if ns == "" {
		return ""
	}
	return "cache:" + ns + ":" + sha1Hex(r.Method+"|"+r.URL.Path+"|"+r.URL.RawQuery)
}

func (c *Cache) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			// A successful mutation invalidates every cached read of the
			// touched collection.
			if ww.Status() < 400 {
				c.purge(r)
			}
			return
		}

		k := key(r)
		if k == "" {
			next.ServeHTTP(w, r)
			return
		}

		if b, err := c.rdb.Get(r.Context(), k).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for name, vals := range hit.Header {
					for _, v := range vals {
						w.Header().Add(name, v)
					}
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(hit.Status)
				_, _ = w.Write(hit.Body)
				return
			}
		}

		buf := &bytes.Buffer{}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(buf)

		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(ww, r)

		// Only successful reads are worth keeping.
		if ww.Status() >= 200 && ww.Status() < 300 {
			item := cachedBody{
				Status: ww.Status(),
				Header: ww.Header(),
				Body:   buf.Bytes(),
			}

			var out bytes.Buffer
			if err := gob.NewEncoder(&out).Encode(item); err == nil {
				_ = c.rdb.Set(r.Context(), k, out.Bytes(), c.ttl).Err()
			}
		}
	})
}

func (c *Cache) purge(r *http.Request) {
	ns := namespace(r.URL.Path)
	if ns == "" {
		return
	}

	iter := c.rdb.Scan(r.Context(), 0, "cache:"+ns+":*", 0).Iterator()
	for iter.Next(r.Context()) {
		_ = c.rdb.Del(r.Context(), iter.Val()).Err()
	}
}
