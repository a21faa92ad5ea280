package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrSendFailed = errors.New("mail send failed")

// ContactMessage is a contact-form submission forwarded to the mail relay.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Mailer forwards contact-form messages to the external relay service,
// which does the actual SMTP work.
type Mailer struct {
	relayURL string
	http     *http.Client
	log      *zap.Logger
}

func New(relayURL string, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{
		relayURL: relayURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

// Send forwards the message. Returns the relay's message id when it
// provides one.
func (m *Mailer) Send(ctx context.Context, msg ContactMessage) (string, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return "", fmt.Errorf("%w: name, email and message are required", ErrSendFailed)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.relayURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.log.Warn("mail relay rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("email", msg.Email))
		return "", fmt.Errorf("%w: relay returned %d", ErrSendFailed, resp.StatusCode)
	}

	var out struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || !out.OK {
		return "", fmt.Errorf("%w: relay did not accept the message", ErrSendFailed)
	}
	return out.ID, nil
}
