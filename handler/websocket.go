package handler

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"movie_booking/helper"
)

// seatRoom gom các websocket của một suất chiếu. Mỗi room chỉ có MỘT
// goroutine sub Redis, nên mỗi update chỉ tới mỗi client đúng một lần.
type seatRoom struct {
	conns  map[*websocket.Conn]bool
	cancel context.CancelFunc
}

var (
	seatRooms = make(map[uint]*seatRoom)
	roomsMu   sync.Mutex
)

func joinSeatRoom(showtimeID uint, c *websocket.Conn) {
	roomsMu.Lock()
	defer roomsMu.Unlock()

	room := seatRooms[showtimeID]
	if room == nil {
		ctx, cancel := context.WithCancel(context.Background())
		room = &seatRoom{conns: make(map[*websocket.Conn]bool), cancel: cancel}
		seatRooms[showtimeID] = room
		go relaySeatUpdates(ctx, showtimeID)
	}
	room.conns[c] = true
}

func leaveSeatRoom(showtimeID uint, c *websocket.Conn) {
	roomsMu.Lock()
	defer roomsMu.Unlock()

	room := seatRooms[showtimeID]
	if room == nil {
		return
	}
	delete(room.conns, c)
	// client cuối rời đi thì dừng luôn subscriber của room
	if len(room.conns) == 0 {
		room.cancel()
		delete(seatRooms, showtimeID)
	}
}

// relaySeatUpdates là subscriber duy nhất của room: nhận message trên
// kênh Redis của suất chiếu và phát cho mọi client đang mở.
func relaySeatUpdates(ctx context.Context, showtimeID uint) {
	pubsub := helper.RedisClient().Subscribe(ctx, fmt.Sprintf("showtime:%d", showtimeID))
	go func() {
		<-ctx.Done()
		pubsub.Close()
	}()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		roomsMu.Lock()
		room := seatRooms[showtimeID]
		if room == nil {
			roomsMu.Unlock()
			return
		}
		for conn := range room.conns {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(room.conns, conn)
			}
		}
		roomsMu.Unlock()
	}
}

// SeatFeed gửi sơ đồ ghế hiện tại khi connect rồi giữ kết nối trong
// room của suất chiếu cho tới khi client ngắt.
func SeatFeed(c *websocket.Conn) {
	showtimeIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(showtimeIdStr, 10, 64)
	showtimeId := uint(id64)

	defer func() {
		leaveSeatRoom(showtimeId, c)
		c.Close()
	}()

	joinSeatRoom(showtimeId, c)

	// Gửi danh sách ghế lần đầu
	if seats, err := FetchShowtimeSeats(showtimeId); err == nil {
		c.WriteJSON(seats)
	}

	// chỉ đọc để phát hiện disconnect, client không gửi dữ liệu
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
