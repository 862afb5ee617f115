package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miigate/internal/sentinel"
)

func TestAccountsMiiData(t *testing.T) {
	t.Run("nnid lookup omits api_id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/mii_data/somebody", r.URL.Path)
			assert.False(t, r.URL.Query().Has("api_id"), "api_id must only be set for the second account system")
			_, _ = w.Write([]byte(`{"data":"AwAAQOlVognnx0GC2/uogAOzuI0n2QAAAFA"}`))
		}))
		defer srv.Close()

		client := NewAccountsClient(srv.URL, 5*time.Second)
		data, err := client.MiiData(context.Background(), "somebody", AccountNNID)

		require.NoError(t, err)
		assert.Equal(t, "AwAAQOlVognnx0GC2/uogAOzuI0n2QAAAFA", data)
	})

	t.Run("pnid lookup appends api_id=1", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("api_id"))
			_, _ = w.Write([]byte(`{"data":"cGF5bG9hZA"}`))
		}))
		defer srv.Close()

		client := NewAccountsClient(srv.URL, 5*time.Second)
		data, err := client.MiiData(context.Background(), "somebody", AccountPNID)

		require.NoError(t, err)
		assert.Equal(t, "cGF5bG9hZA", data)
	})

	t.Run("identifier is path escaped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/mii_data/a%20b", r.URL.RawPath)
			_, _ = w.Write([]byte(`{"data":"x"}`))
		}))
		defer srv.Close()

		client := NewAccountsClient(srv.URL, 5*time.Second)
		_, err := client.MiiData(context.Background(), "a b", AccountNNID)
		require.NoError(t, err)
	})

	t.Run("non-success status maps to unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewAccountsClient(srv.URL, 5*time.Second)
		_, err := client.MiiData(context.Background(), "somebody", AccountNNID)

		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})

	t.Run("missing data field maps to bad data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewAccountsClient(srv.URL, 5*time.Second)
		_, err := client.MiiData(context.Background(), "somebody", AccountNNID)

		assert.ErrorIs(t, err, sentinel.ErrBadData)
	})

	t.Run("transport failure maps to unavailable", func(t *testing.T) {
		client := NewAccountsClient("http://accounts.invalid", 5*time.Second,
			WithAccountsHTTPClient(failingDoer{}))

		_, err := client.MiiData(context.Background(), "somebody", AccountNNID)

		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}
