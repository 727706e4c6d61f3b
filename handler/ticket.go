package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"movie_booking/constants"
	"movie_booking/utils"
)

// FlowTicket trả về vé đã chốt của session; chỉ hợp lệ ở bước ticket.
func FlowTicket(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	ticket, err := session.CompleteBooking()
	if err != nil {
		return flowError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// FlowTicketQR xuất QR của vé dưới dạng PNG tải về.
func FlowTicketQR(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	ticket, err := session.CompleteBooking()
	if err != nil {
		return flowError(c, err)
	}

	png, err := utils.GenerateQRCode(ticket.QRPayload, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	c.Set("Content-Disposition", `attachment; filename="ticket-`+ticket.BookingCode+`.png"`)
	return c.Send(png)
}

// FlowEmailTicket gửi e-ticket kèm QR về email của người đang đặt.
func FlowEmailTicket(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SESSION_NOT_FOUND, errors.New("no session"))
	}

	ticket, err := session.CompleteBooking()
	if err != nil {
		return flowError(c, err)
	}

	to := session.UserEmail()
	if to == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMAIL_SEND_FAILED, errors.New("session has no email"))
	}

	qrPNG, err := utils.GenerateQRCode(ticket.QRPayload, 256)
	if err != nil {
		qrPNG = nil // vé vẫn gửi được, chỉ thiếu QR
	}

	utils.SendTicketEmail(to, utils.TicketEmailData{
		BookingCode: ticket.BookingCode,
		MovieTitle:  ticket.MovieTitle,
		Showtime:    ticket.ShowtimeLabel,
		Seats:       strings.Join(ticket.Seats, ", "),
		Total:       ticket.Total,
	}, qrPNG)

	return utils.SuccessResponse(c, fiber.StatusAccepted, fiber.Map{"sentTo": to})
}
