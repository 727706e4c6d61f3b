package constants

// Roles
const (
	ROLE_ADMIN    = "ADMIN"
	ROLE_CUSTOMER = "CUSTOMER"
)

// Booking status
const (
	BOOKING_PENDING   = "PENDING"
	BOOKING_COMPLETED = "COMPLETED"
	BOOKING_CANCELLED = "CANCELLED"
)

// Movie status
const (
	MOVIE_COMING_SOON = "COMING_SOON"
	MOVIE_NOW_SHOWING = "NOW_SHOWING"
	MOVIE_ENDED       = "ENDED"
)

// Showtime status
const (
	SHOWTIME_ACTIVE  = "ACTIVE"
	SHOWTIME_EXPIRED = "EXPIRED"
)

// Seat status trả về cho client
const (
	SEAT_AVAILABLE = "available"
	SEAT_OCCUPIED  = "occupied"
)

// Response messages
const (
	ERROR_INPUT              = "Invalid input"
	ERROR_INTERNAL_ERROR     = "Internal server error"
	ERROR_NOT_FOUND          = "Not found"
	MISSING_LOGIN_INPUT      = "Email and password are required"
	INVALID_CREDENTIALS      = "Invalid email or password"
	EMAIL_ALREADY_EXISTS     = "Email already registered"
	NOT_ADMIN                = "Admin permission required"
	SESSION_NOT_FOUND        = "Booking session not found"
	SEATS_ALREADY_BOOKED     = "One or more seats are already booked"
	BOOKING_NOT_FOUND        = "Booking not found"
	MOVIE_NOT_FOUND          = "Movie not found"
	SHOWTIME_NOT_FOUND       = "Showtime not found"
	FLOW_ACTION_REJECTED     = "Action not allowed in current step"
	BACKEND_UNREACHABLE      = "Unable to reach booking backend"
	EMAIL_SEND_FAILED        = "Failed to send ticket email"
	POSTER_UPLOAD_FAILED     = "Failed to upload poster"
	DATA_INPUT_IS_NOT_NUMBER = "Input must be a number"
)
