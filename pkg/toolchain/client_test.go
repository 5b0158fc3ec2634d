package toolchain_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/devshell/pkg/toolchain"
)

func recordUserAgent(t *testing.T, got *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSendsConfiguredUserAgent(t *testing.T) {
	var got string
	srv := recordUserAgent(t, &got)

	c := toolchain.NewClient(0, "ci-fetcher/2.3")
	_, err := c.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ci-fetcher/2.3", got)
}

func TestClientDefaultUserAgent(t *testing.T) {
	var got string
	srv := recordUserAgent(t, &got)

	c := toolchain.NewClient(0, "")
	_, err := c.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, toolchain.DefaultUserAgent, got)
}
