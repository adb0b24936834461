package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	m := StatusMap{
		"fresh": now.Add(-10 * time.Second).Unix(),
		"stale": now.Add(-200 * time.Second).Unix(),
		"edge":  now.Add(-180 * time.Second).Unix(),
		"never": 0,
	}

	assert.Equal(t, Live, Classify(m, "fresh", now))
	assert.Equal(t, Dead, Classify(m, "stale", now))
	assert.Equal(t, Live, Classify(m, "edge", now))
	assert.Equal(t, Dead, Classify(m, "never", now))
	assert.Equal(t, Unknown, Classify(m, "missing", now))
	assert.Equal(t, Unknown, Classify(nil, "fresh", now))
}

func TestURL(t *testing.T) {
	cases := []struct {
		base, origin, want string
	}{
		{"http://vpn.example.com", "", "ws://vpn.example.com/connection/ws"},
		{"https://vpn.example.com/api/", "", "wss://vpn.example.com/api/connection/ws"},
		{"/api", "http://localhost:3000", "ws://localhost:3000/api/connection/ws"},
		{"/api", "https://dash.example.com/", "wss://dash.example.com/api/connection/ws"},
	}

	for _, tc := range cases {
		got, err := URL(tc.base, tc.origin)
		require.NoError(t, err, tc.base)
		assert.Equal(t, tc.want, got)
	}
}

func TestURLErrors(t *testing.T) {
	_, err := URL("", "http://localhost:3000")
	assert.Error(t, err)

	_, err = URL("/api", "")
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}
