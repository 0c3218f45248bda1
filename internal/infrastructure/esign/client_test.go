package esign

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateEnvelope(t *testing.T) {
	t.Run("returns envelope id from provider", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/envelopes", r.URL.Path)
			assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"envelope_id":"env-42"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key-123", "secret")
		id, err := client.CreateEnvelope(context.Background(), CreateEnvelopeInput{
			TemplateKey:    "employment",
			Title:          "Employment Contract",
			RecipientName:  "Taro Yamada",
			RecipientEmail: "taro@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "env-42", id)
	})

	t.Run("empty envelope id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret")
		_, err := client.CreateEnvelope(context.Background(), CreateEnvelopeInput{})
		assert.Error(t, err)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret")
		_, err := client.CreateEnvelope(context.Background(), CreateEnvelopeInput{})
		assert.Error(t, err)
	})
}

func TestClient_VoidEnvelope(t *testing.T) {
	var calledPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calledPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	require.NoError(t, client.VoidEnvelope(context.Background(), "env-9"))
	assert.Equal(t, "/v1/envelopes/env-9/void", calledPath)
}

func TestClient_DocumentURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/envelopes/env-7/document", r.URL.Path)
		_, _ = w.Write([]byte(`{"url":"https://docs.example.com/env-7.pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret")
	url, err := client.DocumentURL(context.Background(), "env-7")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/env-7.pdf", url)
}

func TestClient_VerifySignature(t *testing.T) {
	client := NewClient("http://unused", "key", "webhook-secret")
	payload := []byte(`{"envelope_id":"env-1","status":"completed"}`)

	mac := hmac.New(sha256.New, []byte("webhook-secret"))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	t.Run("accepts valid signature", func(t *testing.T) {
		assert.True(t, client.VerifySignature(payload, valid))
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		assert.False(t, client.VerifySignature([]byte(`{"status":"voided"}`), valid))
	})

	t.Run("rejects wrong signature", func(t *testing.T) {
		assert.False(t, client.VerifySignature(payload, "deadbeef"))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.False(t, client.VerifySignature(payload, ""))
	})

	t.Run("rejects when secret is unset", func(t *testing.T) {
		unset := NewClient("http://unused", "key", "")
		assert.False(t, unset.VerifySignature(payload, valid))
	})
}
