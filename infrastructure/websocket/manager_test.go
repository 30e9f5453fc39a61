package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-attendance/domain/services"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestWebSocketManager_PublishReachesBranchRoomOnly(t *testing.T) {
	m := NewWebSocketManager()
	branchA := uuid.New()
	branchB := uuid.New()

	inA := &fakeConn{}
	inB := &fakeConn{}
	m.RegisterClient(inA, uuid.New(), branchA.String())
	m.RegisterClient(inB, uuid.New(), branchB.String())
	defer m.UnregisterClient(inA)
	defer m.UnregisterClient(inB)

	m.Publish(services.AttendanceEvent{Type: services.EventShiftOpened, BranchID: branchA, Data: map[string]string{"status": "approved_in"}})

	waitFor(t, func() bool { return len(inA.received()) == 1 })
	assert.Empty(t, inB.received())

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(inA.received()[0], &event))
	assert.Equal(t, "shift_opened", event["type"])
	assert.Equal(t, branchA.String(), event["branch_id"])
}

func TestWebSocketManager_UnregisterCleansRooms(t *testing.T) {
	m := NewWebSocketManager()
	conn := &fakeConn{}

	m.RegisterClient(conn, uuid.New(), "room-1")
	assert.Equal(t, 1, m.RoomSize("room-1"))
	assert.Equal(t, 1, m.ClientCount())

	m.UnregisterClient(conn)
	m.UnregisterClient(conn)
	assert.Equal(t, 0, m.RoomSize("room-1"))
	assert.Equal(t, 0, m.ClientCount())
	assert.Equal(t, 0, m.BroadcastToRoom("room-1", []byte("x")))
}

func TestWebSocketManager_PingPong(t *testing.T) {
	m := NewWebSocketManager()
	conn := &fakeConn{}
	m.RegisterClient(conn, uuid.New(), "room")
	defer m.UnregisterClient(conn)

	m.HandleWebSocketMessage(conn, websocket.TextMessage, []byte(`{"type":"ping"}`))

	waitFor(t, func() bool { return len(conn.received()) == 1 })
	assert.JSONEq(t, `{"type":"pong"}`, string(conn.received()[0]))
}
