package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyStore remembers responses to POST requests carrying an
// Idempotency-Key header so a retried request replays the first response
// instead of running again.
type IdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	now      func() time.Time
	stopOnce sync.Once
	stopChan chan struct{}
}

type idempotencyEntry struct {
	status      int
	contentType string
	body        []byte
	expiresAt   time.Time
	done        chan struct{}
	// stored is false while the first request runs and stays false when
	// its response is not replayable
	stored bool
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long to keep responses (default 24h)
	Cleanup time.Duration // Cleanup interval (default 1h)
}

// NewIdempotencyStore creates a new idempotency store and starts its cleanup loop
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Hour
	}

	s := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go s.cleanupLoop(cfg.Cleanup)

	return s
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *IdempotencyStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if entry.stored && entry.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// begin returns the finished entry for key, or registers a new in-flight
// entry and returns it with owner set. A caller that finds an in-flight
// entry waits for it.
func (s *IdempotencyStore) begin(key string) (entry *idempotencyEntry, owner bool) {
	for {
		s.mu.Lock()
		existing, ok := s.entries[key]
		if !ok || (existing.stored && existing.expiresAt.Before(s.now())) {
			entry = &idempotencyEntry{done: make(chan struct{})}
			s.entries[key] = entry
			s.mu.Unlock()
			return entry, true
		}
		s.mu.Unlock()

		<-existing.done
		if existing.stored {
			return existing, false
		}
		// The first attempt was not replayable; run again.
	}
}

// finish records the response for key. Server errors are not kept so a
// retry runs the request again.
func (s *IdempotencyStore) finish(key string, entry *idempotencyEntry, rec *recordingWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.status < http.StatusInternalServerError {
		entry.status = rec.status
		entry.contentType = rec.Header().Get("Content-Type")
		entry.body = rec.body.Bytes()
		entry.expiresAt = s.now().Add(s.ttl)
		entry.stored = true
	} else if s.entries[key] == entry {
		delete(s.entries, key)
	}
	close(entry.done)
}

// fingerprint ties a key to the caller and the exact request it was first used with
func fingerprint(client, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	for _, part := range [][]byte{[]byte(client), []byte(idempotencyKey), []byte(method), []byte(path), body} {
		h.Write(part)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// recordingWriter captures the response while passing it through
type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func replay(w http.ResponseWriter, entry *idempotencyEntry) {
	if entry.contentType != "" {
		w.Header().Set("Content-Type", entry.contentType)
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that replays responses for POST requests
// repeated with the same Idempotency-Key, client, path and body.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get("Idempotency-Key")
			if r.Method != http.MethodPost || idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := fingerprint(ClientKey(r), idempotencyKey, r.Method, r.URL.Path, body)

			entry, owner := store.begin(key)
			if !owner {
				replay(w, entry)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			completed := false
			defer func() {
				if !completed {
					rec.status = http.StatusInternalServerError
				}
				store.finish(key, entry, rec)
			}()

			next.ServeHTTP(rec, r)
			completed = true
		})
	}
}
