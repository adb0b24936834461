package logx

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.57:4242":     "203.0.113.0",
		"203.0.113.57":          "203.0.113.0",
		"198.51.100.255:80":     "198.51.100.0",
		"[::ffff:10.1.2.3]:80":  "10.1.2.0",
		"127.0.0.1:3000":        "127.0.0.1",
		"[2001:db8:1:2:3::4]:1": "2001:db8:1:2::",
		"garbage":               "unknown_ip",
	}

	for in, want := range cases {
		assert.Equal(t, want, anonymizeIP(in), in)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, false)
	t.Cleanup(func() { initLogger(&bytes.Buffer{}, false) })

	handler := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login?code=secret", nil))
	assert.Empty(t, buf.String(), "successful requests are logged at debug level")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?code=secret", nil))
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"request_path":"/missing"`)
	assert.NotContains(t, buf.String(), "secret")
}

func TestCheckFieldsDropsOddLists(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, false)
	t.Cleanup(func() { initLogger(&bytes.Buffer{}, false) })

	assert.Nil(t, checkFields("Info", []any{"key"}))
	assert.Equal(t, []any{"k", "v"}, checkFields("Info", []any{"k", "v"}))
	assert.Contains(t, buf.String(), "odd number of fields")
}
