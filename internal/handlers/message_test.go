package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
)

func TestMessageHandler_Flow(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.jsonRequest(http.MethodPost, "/messages", map[string]string{
		"sender": "visitor@example.com",
		"body":   "Is the boa still available?",
		"title":  "boa",
	})
	require.NoError(t, env.Msgs.CreateMessage(c))

	var msg models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.Datetime.IsZero())

	c, rec = env.jsonRequest(http.MethodGet, "/messages", nil)
	require.NoError(t, env.Msgs.ListMessages(c))
	var list []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	id := fmt.Sprint(msg.ID)
	c, rec = env.jsonRequest(http.MethodGet, "/messages/"+id, nil)
	require.NoError(t, env.Msgs.GetMessage(withID(c, id)))
	assert.Contains(t, rec.Body.String(), "visitor@example.com")

	c, _ = env.jsonRequest(http.MethodDelete, "/messages/"+id, nil)
	require.NoError(t, env.Msgs.DeleteMessage(withID(c, id)))

	c, _ = env.jsonRequest(http.MethodGet, "/messages/"+id, nil)
	requireHTTPError(t, env.Msgs.GetMessage(withID(c, id)), http.StatusNotFound)

	c, _ = env.jsonRequest(http.MethodDelete, "/messages/"+id, nil)
	requireHTTPError(t, env.Msgs.DeleteMessage(withID(c, id)), http.StatusNotFound)
}

func TestMessageHandler_Create_Invalid(t *testing.T) {
	env := newTestEnv(t)

	c, _ := env.jsonRequest(http.MethodPost, "/messages", map[string]string{"title": "no sender"})
	requireHTTPError(t, env.Msgs.CreateMessage(c), http.StatusBadRequest)
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.jsonRequest(http.MethodGet, "/health/live", nil)
	require.NoError(t, env.Health.Live(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.jsonRequest(http.MethodGet, "/health/ready", nil)
	require.NoError(t, env.Health.Ready(c))
	assert.JSONEq(t, `{"status":"online"}`, rec.Body.String())
}
