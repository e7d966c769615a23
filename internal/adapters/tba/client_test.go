package tba

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchJSON = `{
  "key": "2025test_qm4",
  "event_key": "2025test",
  "comp_level": "qm",
  "match_number": 4,
  "alliances": {
    "red": {"score": 92, "team_keys": ["frc254", "frc1678", "frc971"]},
    "blue": {"score": 78, "team_keys": ["frc118", "frc148", "frc1323"]}
  }
}`

func feedServer(t *testing.T, wantKey string, hits *atomic.Int32, failing *atomic.Bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("X-TBA-Auth-Key"); got != wantKey {
			t.Errorf("auth header = %q, want %q", got, wantKey)
		}
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		switch r.URL.Path {
		case "/match/2025test_qm4":
			w.Write([]byte(matchJSON))
		case "/event/2025test/matches":
			w.Write([]byte("[" + matchJSON + "]"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetMatch(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	var failing atomic.Bool
	srv := feedServer(t, "secret", &hits, &failing)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAuthKey("secret"))

	payload, err := c.GetMatch(ctx, "2025test", "2025test_qm4")
	require.NoError(t, err)
	assert.Equal(t, "2025test_qm4", payload.Key)
	assert.Equal(t, 92, payload.Alliances.Red.Score)

	t.Run("feed outage serves the cached payload", func(t *testing.T) {
		failing.Store(true)
		defer failing.Store(false)

		cached, err := c.GetMatch(ctx, "2025test", "2025test_qm4")
		require.NoError(t, err)
		assert.Equal(t, payload.Key, cached.Key)
	})

	t.Run("outage with a cold cache is an error", func(t *testing.T) {
		failing.Store(true)
		defer failing.Store(false)

		_, err := c.GetMatch(ctx, "2025test", "2025test_qm9")
		assert.ErrorIs(t, err, ErrNeverFetched)
	})

	t.Run("feed 404 is not-found, never cached", func(t *testing.T) {
		_, err := c.GetMatch(ctx, "2025test", "2025test_qm99")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestGetEventMatches(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int32
	var failing atomic.Bool
	srv := feedServer(t, "", &hits, &failing)
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))

	payloads, err := c.GetEventMatches(ctx, "2025test")
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	t.Run("event fetch warms the per-match cache", func(t *testing.T) {
		failing.Store(true)
		defer failing.Store(false)

		cached, err := c.GetMatch(ctx, "2025test", "2025test_qm4")
		require.NoError(t, err)
		assert.Equal(t, "2025test_qm4", cached.Key)
	})

	t.Run("outage serves the cached event list", func(t *testing.T) {
		failing.Store(true)
		defer failing.Store(false)

		cached, err := c.GetEventMatches(ctx, "2025test")
		require.NoError(t, err)
		assert.Len(t, cached, 1)
	})

	t.Run("unknown event is not-found", func(t *testing.T) {
		_, err := c.GetEventMatches(ctx, "2026none")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}
