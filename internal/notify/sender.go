package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pedidos/internal/config"
)

// Sender posts a formatted text message to the configured messaging webhook.
// Sends are best effort: callers log a failure and move on, an operation
// never fails because its notification did.
type Sender struct {
	cfg    config.Webhook
	client *http.Client
}

func NewSender(cfg config.Webhook) *Sender {
	return &Sender{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

type sendPayload struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// Send delivers text to the configured chat. Returns (false, nil) when the
// webhook is not configured, and (false, err) on any transport or non-2xx
// failure. The boolean is the only signal callers act on.
func (s *Sender) Send(text string) (bool, error) {
	if !s.cfg.Configured() {
		return false, nil
	}

	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s",
		strings.TrimRight(s.cfg.APIURL, "/"), s.cfg.InstanceID, s.cfg.APIToken)

	body, err := json.Marshal(sendPayload{ChatID: s.cfg.ChatID, Message: text})
	if err != nil {
		return false, err
	}
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return true, nil
}
