package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos/internal/config"
	"pedidos/internal/notify"
)

func TestSender_SkipsWhenUnconfigured(t *testing.T) {
	s := notify.NewSender(config.Webhook{APIURL: "https://api.green-api.com"})
	sent, err := s.Send("hello")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestSender_PostsToWebhook(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := notify.NewSender(config.Webhook{
		APIURL:     srv.URL,
		InstanceID: "12345",
		APIToken:   "tok",
		ChatID:     "573001112233@c.us",
	})
	sent, err := s.Send("New order #abc")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "/waInstance12345/sendMessage/tok", gotPath)
	assert.Equal(t, "573001112233@c.us", gotBody["chatId"])
	assert.Equal(t, "New order #abc", gotBody["message"])
}

func TestSender_NonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := notify.NewSender(config.Webhook{APIURL: srv.URL, InstanceID: "1", APIToken: "t", ChatID: "c"})
	sent, err := s.Send("msg")
	assert.False(t, sent)
	assert.Error(t, err)
}

func TestSender_TransportFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := notify.NewSender(config.Webhook{APIURL: srv.URL, InstanceID: "1", APIToken: "t", ChatID: "c"})
	sent, err := s.Send("msg")
	assert.False(t, sent)
	assert.Error(t, err)
}
