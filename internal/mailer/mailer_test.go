package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg ContactMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "Asha", msg.Name)
		assert.Equal(t, "asha@example.com", msg.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"id":"msg-1"}`))
	}))
	defer srv.Close()

	m := New(srv.URL, nil)
	id, err := m.Send(context.Background(), ContactMessage{
		Name:    " Asha ",
		Email:   "asha@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
}

func TestSendValidation(t *testing.T) {
	m := New("http://relay.invalid", nil)
	_, err := m.Send(context.Background(), ContactMessage{Name: "Asha"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSendRelayRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	m := New(srv.URL, nil)
	_, err := m.Send(context.Background(), ContactMessage{
		Name: "A", Email: "a@b.c", Message: "x",
	})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSendRelayNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	m := New(srv.URL, nil)
	_, err := m.Send(context.Background(), ContactMessage{
		Name: "A", Email: "a@b.c", Message: "x",
	})
	assert.ErrorIs(t, err, ErrSendFailed)
}
