package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialClient connects a websocket client and registers it with the hub.
func dialClient(t *testing.T, hub *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(&Client{UserID: userID, Conn: conn})
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesOwnerOnly(t *testing.T) {
	hub := NewHub()
	owner := uuid.New()
	other := uuid.New()

	ownerConn := dialClient(t, hub, owner)
	otherConn := dialClient(t, hub, other)

	hub.Broadcast(owner, map[string]string{"kind": "test"})

	require.NoError(t, ownerConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ownerConn.ReadMessage()
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg, &payload))
	assert.Equal(t, "test", payload["kind"])

	// The other user's connection stays silent.
	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = otherConn.ReadMessage()
	assert.Error(t, err)
}

func TestBroadcastToAllConnectionsOfUser(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	first := dialClient(t, hub, user)
	second := dialClient(t, hub, user)

	hub.Broadcast(user, map[string]string{"kind": "multi"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(msg), "multi")
	}
}

func TestBroadcastWithoutClientsIsHarmless(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(uuid.New(), map[string]string{"kind": "void"})
}
