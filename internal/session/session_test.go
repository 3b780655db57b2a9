package session

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.toml")
}

func writeSession(t *testing.T, path, token string, expiresAt int64) {
	t.Helper()
	content := "token = " + strconv.Quote(token) + "\nexpires_at = " + strconv.Quote(strconv.FormatInt(expiresAt, 10)) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_MissingFileBecomesReadySignedOut(t *testing.T) {
	s, err := NewStore(testPath(t))
	require.NoError(t, err)

	require.False(t, s.Ready())
	require.NoError(t, s.Load())
	require.True(t, s.Ready())
	require.Empty(t, s.Token())
}

func TestLoad_ExpiredTokenIsClearedFromDisk(t *testing.T) {
	path := testPath(t)
	writeSession(t, path, "stale", time.Now().Add(-time.Hour).UnixMilli())

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Load())

	require.True(t, s.Ready())
	require.Empty(t, s.Token())
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLoad_ValidTokenActivatesWithoutRewriting(t *testing.T) {
	path := testPath(t)
	expiresAt := time.Now().Add(time.Hour).UnixMilli()
	writeSession(t, path, "live", expiresAt)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Load())

	require.Equal(t, "live", s.Token())
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after, "valid session file must not be modified by Load")
}

func TestLoad_CorruptFileIsCleared(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not toml {{{"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Load())
	require.Empty(t, s.Token())
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSave_ComputesAbsoluteExpiry(t *testing.T) {
	path := testPath(t)
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Load())

	before := time.Now().UnixMilli()
	require.NoError(t, s.Save("tok", 3600))
	after := time.Now().UnixMilli()

	p, err := readFile(path)
	require.NoError(t, err)
	require.Equal(t, "tok", p.Token)
	expiresAt, err := strconv.ParseInt(p.ExpiresAt, 10, 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, expiresAt, before+3_600_000)
	require.LessOrEqual(t, expiresAt, after+3_600_000)

	require.Equal(t, "tok", s.Token())
}

func TestExpiry_UsesInjectedClock(t *testing.T) {
	path := testPath(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s1, err := NewStore(path)
	require.NoError(t, err)
	s1.now = func() time.Time { return base }
	require.NoError(t, s1.Load())
	require.NoError(t, s1.Save("tok", 3600))

	p, err := readFile(path)
	require.NoError(t, err)
	require.Equal(t, strconv.FormatInt(base.UnixMilli()+3_600_000, 10), p.ExpiresAt)

	// One millisecond before expiry the token is still live.
	s2, err := NewStore(path)
	require.NoError(t, err)
	s2.now = func() time.Time { return base.Add(time.Hour - time.Millisecond) }
	require.NoError(t, s2.Load())
	require.Equal(t, "tok", s2.Token())

	// At the exact expiry instant it is cleared.
	s3, err := NewStore(path)
	require.NoError(t, err)
	s3.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, s3.Load())
	require.Empty(t, s3.Token())
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSave_ReplacesPreviousToken(t *testing.T) {
	s, err := NewStore(testPath(t))
	require.NoError(t, err)
	require.NoError(t, s.Load())

	require.NoError(t, s.Save("first", 3600))
	require.NoError(t, s.Save("second", 3600))
	require.Equal(t, "second", s.Token())
}

func TestRoundTrip_FreshProcessResumesSession(t *testing.T) {
	path := testPath(t)

	s1, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Load())
	require.NoError(t, s1.Save("tok-roundtrip", 3600))

	// A second store over the same file stands in for a fresh process.
	s2, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s2.Load())
	require.Equal(t, "tok-roundtrip", s2.Token())
}

func TestClear_RemovesPersistedState(t *testing.T) {
	path := testPath(t)
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Load())
	require.NoError(t, s.Save("tok", 3600))

	require.NoError(t, s.Clear())
	require.Empty(t, s.Token())
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	// Clearing an already-clear store is fine.
	require.NoError(t, s.Clear())
}

func TestToken_PeeksAtDiskBeforeLoad(t *testing.T) {
	path := testPath(t)
	writeSession(t, path, "early", time.Now().Add(time.Hour).UnixMilli())

	s, err := NewStore(path)
	require.NoError(t, err)

	// A request racing startup still resolves the persisted token.
	require.Equal(t, "early", s.Token())
	require.False(t, s.Ready())
}

func TestSubscribe_FiresPerTransitionAndCancels(t *testing.T) {
	s, err := NewStore(testPath(t))
	require.NoError(t, err)

	calls := 0
	cancel := s.Subscribe(func() { calls++ })

	require.NoError(t, s.Load())
	require.Equal(t, 1, calls)

	require.NoError(t, s.Save("tok", 60))
	require.Equal(t, 2, calls)

	require.NoError(t, s.Clear())
	require.Equal(t, 3, calls)

	cancel()
	require.NoError(t, s.Save("tok2", 60))
	require.Equal(t, 3, calls)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	s, err := NewStore(testPath(t))
	require.NoError(t, err)

	var seen string
	s.Subscribe(func() { seen = s.Token() })

	require.NoError(t, s.Load())
	require.NoError(t, s.Save("visible", 60))
	require.Equal(t, "visible", seen)
}
