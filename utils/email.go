package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"os"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// TicketEmailData dữ liệu cho template email vé
type TicketEmailData struct {
	BookingCode string
	MovieTitle  string
	Showtime    string
	Seats       string
	Total       string
}

// SendTicketEmail gửi e-ticket kèm QR code (async để không delay response)
func SendTicketEmail(to string, data TicketEmailData, qrPNG []byte) {
	go func() {
		tmplPath := "templates/ticket_email.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Your e-ticket #"+data.BookingCode)
		m.SetBody("text/html", body.String())
		if len(qrPNG) > 0 {
			m.Attach("ticket-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrPNG)
				return err
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email vé: %v", err)
		}
	}()
}

// SendWelcomeEmail gửi mail chào mừng dạng text khi đăng ký
func SendWelcomeEmail(to, name string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		e := email.NewEmail()
		e.From = from
		e.To = []string{to}
		e.Subject = "Welcome to Movie Booking System"
		e.Text = []byte(fmt.Sprintf("Hi %s,\n\nYour account is ready. Enjoy the show!\n", name))

		addr := host + ":" + portStr
		if err := e.Send(addr, smtp.PlainAuth("", username, password, host)); err != nil {
			log.Printf("Lỗi gửi email chào mừng: %v", err)
		}
	}()
}
