package handler

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"movie_booking/client"
	"movie_booking/config"
	"movie_booking/constants"
	"movie_booking/flow"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"
)

// flowAPI là backend mà flow session nói chuyện cùng. Mặc định trỏ về
// chính server này; test thay bằng fake qua SetFlowAPI.
var (
	flowAPI   client.BookingAPI
	flowAPIMu sync.Mutex
)

func SetFlowAPI(api client.BookingAPI) {
	flowAPIMu.Lock()
	defer flowAPIMu.Unlock()
	flowAPI = api
}

func getFlowAPI() client.BookingAPI {
	flowAPIMu.Lock()
	defer flowAPIMu.Unlock()
	if flowAPI == nil {
		flowAPI = client.New(config.ConfigDefault("BACKEND_URL", "http://localhost:3000"))
	}
	return flowAPI
}

func bookingFee() flow.Cents {
	return flow.Cents(config.ConfigInt("BOOKING_FEE_CENTS", 0))
}

func sessionFromCtx(c *fiber.Ctx) *flow.Session {
	id := c.Cookies("flow_session")
	if id == "" {
		id = c.Get("X-Flow-Session")
	}
	if id == "" {
		return nil
	}
	return helper.Sessions.Get(id)
}

// flowError dịch sentinel error của flow core sang HTTP status.
func flowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, flow.ErrUnknownMovie):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
	case errors.Is(err, flow.ErrUnknownShowtime):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err)
	case errors.Is(err, flow.ErrBusy):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.FLOW_ACTION_REJECTED, err)
	case errors.Is(err, flow.ErrInvalidTransition),
		errors.Is(err, flow.ErrMovieRequired),
		errors.Is(err, flow.ErrShowtimeRequired),
		errors.Is(err, flow.ErrNoSeatsSelected),
		errors.Is(err, flow.ErrNotFinalized):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FLOW_ACTION_REJECTED, err)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.BACKEND_UNREACHABLE, err)
	}
}

// CreateFlowSession mở một lượt đặt vé mới ở bước login.
func CreateFlowSession(c *fiber.Ctx) error {
	session := flow.NewSession(getFlowAPI(), bookingFee())
	helper.Sessions.Put(session)

	c.Cookie(&fiber.Cookie{
		Name:     "flow_session",
		Value:    session.ID,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return utils.SuccessResponse(c, fiber.StatusCreated, session.Snapshot())
}

func GetFlowState(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

// FlowLogin xác thực với DB rồi đưa session qua bước movies (admin thì
// qua bước admin).
func FlowLogin(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	input := new(model.LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}
	if input.Email == "" || input.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	userModel, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if userModel == nil || !helper.CheckPasswordHash(input.Password, userModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, errors.New("bad credentials"))
	}

	isAdmin := userModel.Role == constants.ROLE_ADMIN
	if err := session.Login(userModel.ID, userModel.Email, isAdmin); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowSelectMovie(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	var input struct {
		MovieID uint `json:"movieId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if err := session.SelectMovie(input.MovieID); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowSelectShowtime(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	var input struct {
		ShowtimeID uint `json:"showtimeId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if err := session.SelectShowtime(input.ShowtimeID); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowToggleSeat(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	var input struct {
		Seat string `json:"seat"`
	}
	if err := c.BodyParser(&input); err != nil || input.Seat == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("seat label required"))
	}

	if err := session.ToggleSeat(input.Seat); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowConfirmSeats(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	if err := session.ConfirmSeats(); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowSubmitPayment(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	var input struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if err := session.SubmitPayment(input.Method); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowBack(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	session.Back()
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowReturnHome(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	if err := session.ReturnHome(); err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}

func FlowLogout(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	session.Logout()
	return utils.SuccessResponse(c, fiber.StatusOK, session.Snapshot())
}
