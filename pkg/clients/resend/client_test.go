package resend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tapright/waitlist-api/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	return NewClient("re_test", time.Second, zaptest.NewLogger(t), WithBaseURL(base))
}

func TestClient_Send(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	})

	id, err := c.Send(context.Background(), models.Email{
		From:    "TapRight <info@tapright.app>",
		To:      []string{"ada@example.com"},
		Subject: "Hello",
		Text:    "Hi Ada,",
	})
	require.NoError(t, err)
	assert.Equal(t, "email_123", id)

	assert.Equal(t, "TapRight <info@tapright.app>", got["from"])
	assert.Equal(t, []interface{}{"ada@example.com"}, got["to"])
	assert.Equal(t, "Hello", got["subject"])
	assert.Equal(t, "Hi Ada,", got["text"])
}

func TestClient_Send_ProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	})

	_, err := c.Send(context.Background(), models.Email{To: []string{"ada@example.com"}, Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend send failed")
}
