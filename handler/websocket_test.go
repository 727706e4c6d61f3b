package handler

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatRoomLifecycle(t *testing.T) {
	a, b := new(websocket.Conn), new(websocket.Conn)

	joinSeatRoom(77, a)
	joinSeatRoom(77, b)

	// hai client chung một room, không mỗi client một subscriber
	roomsMu.Lock()
	room := seatRooms[77]
	require.NotNil(t, room)
	assert.Len(t, room.conns, 2)
	roomsMu.Unlock()

	leaveSeatRoom(77, a)
	roomsMu.Lock()
	assert.Len(t, seatRooms[77].conns, 1)
	roomsMu.Unlock()

	// client cuối rời đi thì room và subscriber bị dọn
	leaveSeatRoom(77, b)
	roomsMu.Lock()
	assert.Nil(t, seatRooms[77])
	roomsMu.Unlock()

	// leave lặp lại không panic
	leaveSeatRoom(77, b)
}
