package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsJSONBody(t *testing.T) {
	var received Result
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Send(context.Background(), Result{Map: "boulder-dash", Score: 72, Moves: 3})

	assert.Equal(t, "boulder-dash", received.Map)
	assert.Equal(t, 72, received.Score)
}

func TestSendWithEmptyURLIsNoop(t *testing.T) {
	c := New("")
	assert.NotPanics(t, func() {
		c.Send(context.Background(), Result{Map: "x"})
	})
}

func TestSendSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.NotPanics(t, func() {
		c.Send(context.Background(), Result{Map: "x"})
	})
}

func TestSendSwallowsUnreachableHost(t *testing.T) {
	c := New("http://127.0.0.1:1/unreachable")
	assert.NotPanics(t, func() {
		c.Send(context.Background(), Result{Map: "x"})
	})
}
