package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushSubscriptionLifecycle(t *testing.T) {
	var subscribed string
	var unsubscribed, tested bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /notifications/vapid_public_key":
			w.Write([]byte(`{"publicKey": "vapid-key"}`))
		case "POST /notifications/subscribe":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			subscribed = body["token"]
			w.WriteHeader(http.StatusNoContent)
		case "DELETE /notifications/device-token":
			unsubscribed = true
			w.WriteHeader(http.StatusNoContent)
		case "POST /notifications/send_test":
			tested = true
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok"))
	ctx := context.Background()

	key, err := c.VapidPublicKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vapid-key", key)

	require.NoError(t, c.RegisterDeviceToken(ctx, "device-1"))
	assert.Equal(t, "device-1", subscribed)

	require.NoError(t, c.SendTestNotification(ctx))
	assert.True(t, tested)

	require.NoError(t, c.UnregisterDeviceToken(ctx))
	assert.True(t, unsubscribed)
}
