package flow

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"movie_booking/client"
)

// Session là flow controller của một lượt đặt vé: giữ step machine,
// booking context, sơ đồ ghế và là nơi duy nhất được ghi vào context.
// Mọi fetch backend chạy ngoài lock; kết quả chỉ được commit khi loadSeq
// chưa đổi, nên response về trễ sau khi người dùng đã rời đi sẽ bị bỏ.
type Session struct {
	mu  sync.Mutex
	api client.BookingAPI

	ID  string
	fee Cents

	machine *Machine
	ctx     BookingContext

	movies    []client.Movie
	showtimes []client.Showtime
	active    *client.Showtime
	grid      SeatGrid

	loading   bool
	loadSeq   uint64
	lastError string

	userID    uint
	userEmail string
	isAdmin   bool
	touched   time.Time
}

// Ticket là view bất biến của bước ticket.
type Ticket struct {
	BookingID     uint     `json:"bookingId"`
	BookingCode   string   `json:"bookingCode"`
	MovieTitle    string   `json:"movieTitle"`
	ShowtimeLabel string   `json:"showtimeLabel"`
	Seats         []string `json:"seats"`
	Total         string   `json:"total"`
	QRPayload     string   `json:"qrPayload"`
}

// View là snapshot chỉ đọc cho tầng trình bày.
type View struct {
	SessionID string            `json:"sessionId"`
	Step      Step              `json:"step"`
	Context   BookingContext    `json:"context"`
	Movies    []client.Movie    `json:"movies,omitempty"`
	Showtimes []client.Showtime `json:"showtimes,omitempty"`
	Grid      []GridRow         `json:"grid,omitempty"`
	Loading   bool              `json:"loading"`
	LastError string            `json:"lastError,omitempty"`
}

func NewSession(api client.BookingAPI, fee Cents) *Session {
	return &Session{
		ID:      uuid.NewString(),
		api:     api,
		fee:     fee,
		machine: NewMachine(),
		touched: time.Now(),
	}
}

func (s *Session) touch() {
	s.touched = time.Now()
}

func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Step()
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		SessionID: s.ID,
		Step:      s.machine.Step(),
		Context:   s.ctx,
		Movies:    s.movies,
		Showtimes: s.showtimes,
		Grid:      s.grid.Rows(),
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

func (s *Session) UserID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) UserEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userEmail
}

// Login chuyển login -> movies (hoặc admin) rồi nạp danh sách phim.
func (s *Session) Login(userID uint, email string, admin bool) error {
	s.mu.Lock()
	target := StepMovies
	if admin {
		target = StepAdmin
	}
	if err := s.machine.Advance(target, &s.ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.userID = userID
	s.userEmail = email
	s.isAdmin = admin
	s.touch()
	s.mu.Unlock()

	if admin {
		return nil
	}
	return s.loadMovies()
}

func (s *Session) loadMovies() error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.loading = true
	seq := s.loadSeq
	s.mu.Unlock()

	movies, err := s.api.Movies()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return nil // người dùng đã rời đi, bỏ response
	}
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	s.movies = movies
	s.lastError = ""
	return nil
}

// SelectMovie vào bước seats rồi nạp suất chiếu + sơ đồ ghế cho phim.
func (s *Session) SelectMovie(movieID uint) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	var movie *client.Movie
	for i := range s.movies {
		if s.movies[i].MovieID == movieID {
			movie = &s.movies[i]
			break
		}
	}
	if movie == nil {
		s.mu.Unlock()
		return ErrUnknownMovie
	}
	prev := s.ctx.Movie
	s.ctx.Movie = movie
	if err := s.machine.Advance(StepSeats, &s.ctx); err != nil {
		s.ctx.Movie = prev // transition bị từ chối thì context giữ nguyên
		s.mu.Unlock()
		return err
	}
	// suất và ghế của phim cũ không còn ý nghĩa
	s.showtimes = nil
	s.active = nil
	s.grid = SeatGrid{}
	s.ctx.ShowtimeID = 0
	s.ctx.ShowtimeLabel = ""
	s.clearSelectionLocked()
	s.loadSeq++
	seq := s.loadSeq
	s.loading = true
	s.touch()
	s.mu.Unlock()

	showtimes, err := s.api.Showtimes()
	if err != nil {
		return s.failLoad(seq, err)
	}
	filtered := FilterByMovie(showtimes, movieID)
	active := DefaultShowtime(filtered)

	var seats []client.Seat
	if active != nil {
		seats, err = s.api.Seats(active.ShowtimeID)
		if err != nil {
			return s.failLoad(seq, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return nil
	}
	s.loading = false
	s.lastError = ""
	s.showtimes = filtered
	s.commitShowtimeLocked(active, seats)
	return nil
}

// SelectShowtime đổi suất đang active; mọi ghế đã chọn bị xoá vì
// selection chỉ có nghĩa trong một (rạp, phòng chiếu).
func (s *Session) SelectShowtime(showtimeID uint) error {
	s.mu.Lock()
	if s.machine.Step() != StepSeats {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	var target *client.Showtime
	for i := range s.showtimes {
		if s.showtimes[i].ShowtimeID == showtimeID {
			target = &s.showtimes[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return ErrUnknownShowtime
	}
	st := *target
	s.loadSeq++
	seq := s.loadSeq
	s.loading = true
	s.touch()
	s.mu.Unlock()

	seats, err := s.api.Seats(st.ShowtimeID)
	if err != nil {
		return s.failLoad(seq, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return nil
	}
	s.loading = false
	s.lastError = ""
	s.commitShowtimeLocked(&st, seats)
	return nil
}

func (s *Session) failLoad(seq uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return nil
	}
	s.loading = false
	s.lastError = err.Error()
	return err
}

// commitShowtimeLocked chốt suất active và dựng lại grid từ danh sách
// ghế của (rạp, phòng chiếu) tương ứng. Gọi khi đang giữ lock.
func (s *Session) commitShowtimeLocked(st *client.Showtime, seats []client.Seat) {
	s.active = st
	if st == nil {
		s.grid = SeatGrid{}
		s.ctx.ShowtimeID = 0
		s.ctx.ShowtimeLabel = ""
		s.clearSelectionLocked()
		return
	}

	var screenSeats []client.Seat
	for _, seat := range seats {
		if seat.TheaterID == st.TheaterID && seat.ScreenNumber == st.ScreenNumber {
			screenSeats = append(screenSeats, seat)
		}
	}
	s.grid = BuildGrid(screenSeats, RowLength)
	s.ctx.ShowtimeID = st.ShowtimeID
	s.ctx.ShowtimeLabel = formatShowtime(st.ShowDateTime)
	s.clearSelectionLocked()
}

func formatShowtime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Mon, 02 Jan 2006 15:04")
}

func (s *Session) basePriceLocked() Cents {
	if s.active == nil {
		return DefaultBasePrice
	}
	base := DollarsToCents(s.active.BasePrice)
	if base == 0 {
		return DefaultBasePrice
	}
	return base
}

func (s *Session) clearSelectionLocked() {
	s.grid.ClearSelection()
	s.recomputeLocked()
}

// recomputeLocked tính lại ghế đã chọn và tổng tiền từ grid, không bao
// giờ cộng dồn.
func (s *Session) recomputeLocked() {
	selected := s.grid.Selected()
	labels := make([]string, 0, len(selected))
	ids := make([]uint, 0, len(selected))
	for _, seat := range selected {
		labels = append(labels, seat.Label)
		ids = append(ids, seat.ID)
	}
	s.ctx.SeatLabels = labels
	s.ctx.SeatIDs = ids
	s.ctx.Subtotal = ComputeTotal(len(selected), s.basePriceLocked())
	s.ctx.Fee = 0
	s.ctx.Total = s.ctx.Subtotal
}

// ToggleSeat đảo một ghế; ghế occupied hay label lạ thì lặng lẽ bỏ qua.
func (s *Session) ToggleSeat(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machine.Step() != StepSeats {
		return ErrInvalidTransition
	}
	if s.loading {
		return ErrBusy
	}
	if s.grid.Toggle(label) {
		s.recomputeLocked()
	}
	s.touch()
	return nil
}

// ConfirmSeats chuyển seats -> payment, chốt phí đặt vé vào tổng.
func (s *Session) ConfirmSeats() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	if err := s.machine.Advance(StepPayment, &s.ctx); err != nil {
		return err
	}
	s.ctx.Fee = s.fee
	s.ctx.Total = s.ctx.Subtotal + s.fee
	s.touch()
	return nil
}

// SubmitPayment gửi booking lên backend. Thất bại thì bước và context
// giữ nguyên, gọi lại sẽ gửi đúng payload cũ.
func (s *Session) SubmitPayment(method string) error {
	s.mu.Lock()
	if s.machine.Step() != StepPayment {
		s.mu.Unlock()
		return ErrInvalidTransition
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}
	if method == "" {
		method = "credit"
	}
	req := client.BookingRequest{
		UserID:        s.userID,
		ShowtimeID:    s.ctx.ShowtimeID,
		TotalAmount:   s.ctx.Total.Dollars(),
		PaymentStatus: "completed",
		PaymentMethod: method,
		SeatIDs:       append([]uint(nil), s.ctx.SeatIDs...),
	}
	s.loading = true
	seq := s.loadSeq
	s.mu.Unlock()

	resp, err := s.api.CreateBooking(req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadSeq != seq {
		return nil // đã logout trong lúc chờ, bỏ kết quả
	}
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return err
	}
	if resp.BookingID == 0 {
		s.lastError = "backend returned no bookingId"
		return fmt.Errorf("submit payment: %s", s.lastError)
	}
	s.ctx.BookingID = resp.BookingID
	s.ctx.BookingCode = resp.PublicCode
	if err := s.machine.Advance(StepTicket, &s.ctx); err != nil {
		return err
	}
	s.lastError = ""
	s.touch()
	return nil
}

// CompleteBooking trả về vé đã chốt; chỉ hợp lệ ở bước ticket.
func (s *Session) CompleteBooking() (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machine.Step() != StepTicket {
		return Ticket{}, ErrInvalidTransition
	}
	return s.ticketLocked(), nil
}

func (s *Session) ticketLocked() Ticket {
	t := Ticket{
		BookingID:     s.ctx.BookingID,
		BookingCode:   s.ctx.BookingCode,
		ShowtimeLabel: s.ctx.ShowtimeLabel,
		Seats:         append([]string(nil), s.ctx.SeatLabels...),
		Total:         s.ctx.Total.String(),
	}
	if s.ctx.Movie != nil {
		t.MovieTitle = s.ctx.Movie.Title
	}
	payload, err := json.Marshal(map[string]any{
		"bookingId": t.BookingID,
		"code":      t.BookingCode,
		"movie":     t.MovieTitle,
		"showtime":  t.ShowtimeLabel,
		"seats":     t.Seats,
		"total":     t.Total,
	})
	if err == nil {
		t.QRPayload = string(payload)
	}
	return t
}

// ReturnHome kết thúc lượt đặt: ticket -> movies với context trống.
func (s *Session) ReturnHome() error {
	s.mu.Lock()
	if err := s.machine.Advance(StepMovies, &s.ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.machine.resetToMovies()
	s.ctx.Reset()
	s.showtimes = nil
	s.active = nil
	s.grid = SeatGrid{}
	s.lastError = ""
	s.loadSeq++
	s.touch()
	s.mu.Unlock()

	return s.loadMovies()
}

// Back quay lại bước trước, giữ nguyên dữ liệu các bước sau.
func (s *Session) Back() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.machine.Back()
}

// Logout hợp lệ từ mọi bước, xoá sạch context.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.Logout()
	s.ctx.Reset()
	s.movies = nil
	s.showtimes = nil
	s.active = nil
	s.grid = SeatGrid{}
	s.lastError = ""
	s.loading = false
	s.loadSeq++
	s.userID = 0
	s.userEmail = ""
	s.isAdmin = false
	s.touch()
}
