package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterSubscribe_InvalidEmail(t *testing.T) {
	svc := NewNewsletterService(Newsletter{ProviderURL: "http://localhost:1"})
	for _, email := range []string{"", "no-at-sign", "two@@example.com", "a b@example.com", "a@nodot"} {
		err := svc.Subscribe(context.Background(), email)
		assert.True(t, IsValidation(err), "email %q should be rejected, got %v", email, err)
	}
}

func TestNewsletterSubscribe_ForwardsToProvider(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewNewsletterService(Newsletter{ProviderURL: srv.URL, APIKey: "key-1", ListId: "main"})
	require.NoError(t, svc.Subscribe(context.Background(), "reader@example.com"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewsletterSubscribe_RetriesOnProviderError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewNewsletterService(Newsletter{ProviderURL: srv.URL})
	require.NoError(t, svc.Subscribe(context.Background(), "reader@example.com"))
	assert.Equal(t, int32(3), hits.Load())
}

func TestNewsletterSubscribe_ExhaustedRetriesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewNewsletterService(Newsletter{ProviderURL: srv.URL})
	err := svc.Subscribe(context.Background(), "reader@example.com")
	assert.Error(t, err)
	assert.False(t, IsValidation(err), "provider failure is not a validation error")
}
