// Package session is the single source of truth for the current bearer
// token. The token and its absolute expiry are persisted as a small TOML
// file so a fresh process can resume the session.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/careerlog/session.toml"

// persisted is the on-disk shape: two string fields, nothing else.
// expires_at is epoch milliseconds as a decimal string.
type persisted struct {
	Token     string `toml:"token"`
	ExpiresAt string `toml:"expires_at"`
}

// Store holds the live bearer token and its persisted copy. It satisfies
// api.TokenSource: the client reads the token fresh on every request and
// clears the store on HTTP 401.
type Store struct {
	mu      sync.Mutex
	path    string
	token   string
	ready   bool
	subs    map[int]func()
	nextSub int

	// now is replaced in tests to pin expiry decisions.
	now func() time.Time
}

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// NewStore builds a Store persisting to the given path ("" uses the
// default). The session is not read until Load is called.
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	return &Store{
		path: resolved,
		subs: make(map[int]func()),
		now:  time.Now,
	}, nil
}

// Load reads the persisted session and makes the store ready. A missing,
// unreadable, or expired session leaves the store ready with no active
// token and removes the persisted file. Intended to run exactly once at
// process start; subscribers are notified once per call.
func (s *Store) Load() error {
	s.mu.Lock()

	p, err := readFile(s.path)
	switch {
	case err != nil:
		// Missing or corrupt file: start signed out.
		_ = os.Remove(s.path)
		s.token = ""
	case p.Token == "" || p.ExpiresAt == "":
		_ = os.Remove(s.path)
		s.token = ""
	default:
		expiresAt, parseErr := strconv.ParseInt(p.ExpiresAt, 10, 64)
		if parseErr != nil || s.nowMillis() >= expiresAt {
			_ = os.Remove(s.path)
			s.token = ""
		} else {
			s.token = p.Token
		}
	}
	s.ready = true

	fns := s.listenersLocked()
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

// Save persists the token with an absolute expiry of now plus
// expiresInSeconds and activates it for subsequent requests immediately,
// replacing any previous token.
func (s *Store) Save(token string, expiresInSeconds int) error {
	expiresAt := s.nowMillis() + int64(expiresInSeconds)*1000

	s.mu.Lock()
	s.token = token
	writeErr := writeFile(s.path, persisted{
		Token:     token,
		ExpiresAt: strconv.FormatInt(expiresAt, 10),
	})
	fns := s.listenersLocked()
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}

	if writeErr != nil {
		return fmt.Errorf("persist session: %w", writeErr)
	}
	return nil
}

// Clear removes the persisted session and deactivates the token. Called on
// explicit logout, on expired-token detection during Load, and by the API
// client on HTTP 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	removeErr := os.Remove(s.path)
	fns := s.listenersLocked()
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}

	if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", removeErr)
	}
	return nil
}

// Token returns the current bearer token, or "" when signed out. Before
// Load has completed the persisted value is consulted directly, so a
// request racing startup still goes out authenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token
	}
	if s.ready {
		return ""
	}
	// Load has not run yet: peek at the persisted session. Expiry is not
	// re-checked here; the server rejects stale tokens anyway.
	p, err := readFile(s.path)
	if err != nil {
		return ""
	}
	return p.Token
}

// Ready reports whether Load has completed once. Consumers gate protected
// views on this.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Subscribe registers fn to run after every state transition (load
// completion, save, clear). The returned cancel func removes the
// subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// listenersLocked snapshots the subscriber set. Callers invoke the funcs
// after releasing the mutex so a listener may call back into the store.
func (s *Store) listenersLocked() []func() {
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

func readFile(path string) (persisted, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return persisted{}, err
	}
	var p persisted
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return persisted{}, err
	}
	return p, nil
}

func writeFile(path string, p persisted) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
