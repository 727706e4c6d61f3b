package flow

type Step string

const (
	StepLogin   Step = "login"
	StepMovies  Step = "movies"
	StepSeats   Step = "seats"
	StepPayment Step = "payment"
	StepTicket  Step = "ticket"
	StepAdmin   Step = "admin"
)

// guard kiểm tra precondition của bước sắp vào dựa trên context hiện tại.
type guard func(*BookingContext) bool

var transitions = map[Step]map[Step]guard{
	StepLogin: {
		StepMovies: nil,
		StepAdmin:  nil,
	},
	StepMovies: {
		StepSeats: (*BookingContext).CanEnterSeats,
	},
	StepSeats: {
		StepPayment: (*BookingContext).CanEnterPayment,
	},
	StepPayment: {
		StepTicket: (*BookingContext).CanEnterTicket,
	},
	StepTicket: {
		StepMovies: nil, // return home, Session sẽ reset context
	},
}

// Machine giữ bước hiện tại và lịch sử để đi lùi. Guard fail thì bước
// hiện tại giữ nguyên và trả lỗi, không bao giờ nhảy bước bẩn.
type Machine struct {
	step    Step
	history []Step
}

func NewMachine() *Machine {
	return &Machine{step: StepLogin}
}

func (m *Machine) Step() Step {
	return m.step
}

func (m *Machine) Advance(to Step, ctx *BookingContext) error {
	allowed, ok := transitions[m.step]
	if !ok {
		return ErrInvalidTransition
	}
	g, ok := allowed[to]
	if !ok {
		return ErrInvalidTransition
	}
	if g != nil && !g(ctx) {
		switch to {
		case StepSeats:
			return ErrMovieRequired
		case StepPayment:
			if ctx.ShowtimeID == 0 {
				return ErrShowtimeRequired
			}
			return ErrNoSeatsSelected
		case StepTicket:
			return ErrNotFinalized
		}
		return ErrInvalidTransition
	}

	m.history = append(m.history, m.step)
	m.step = to
	return nil
}

// Back quay về bước trước đó, luôn hợp lệ, không xoá dữ liệu các bước sau.
func (m *Machine) Back() Step {
	if len(m.history) == 0 {
		return m.step
	}
	m.step = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.step
}

// Logout đưa máy về login từ bất kỳ bước nào và xoá lịch sử.
func (m *Machine) Logout() {
	m.step = StepLogin
	m.history = nil
}

// reset về movies sau khi return home từ ticket.
func (m *Machine) resetToMovies() {
	m.step = StepMovies
	m.history = []Step{StepLogin}
}
