package mailer

import (
	"fmt"
	"html"
	"io"
	"time"

	"gymkaana-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

const passImageName = "booking-pass.png"

// BookingPass is everything the pass email shows.
type BookingPass struct {
	ToEmail        string
	MemberName     string
	GymName        string
	PlanName       string
	StartDate      time.Time
	EndDate        time.Time
	ShortReference string
	QRCodePNG      []byte
}

type IEmailService interface {
	SendBookingPass(pass BookingPass) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail string, logger logger.ILogger) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		logger:      logger,
	}
}

func (s *emailService) SendBookingPass(pass BookingPass) error {
	m := s.buildPassMessage(pass)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send booking pass", map[string]interface{}{
			"to":    pass.ToEmail,
			"error": err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Booking pass sent", map[string]interface{}{
		"to":        pass.ToEmail,
		"reference": pass.ShortReference,
	})
	return nil
}

func (s *emailService) buildPassMessage(pass BookingPass) *gomail.Message {
	gymName := orDefault(pass.GymName, "Gymkaana Partner")
	planName := orDefault(pass.PlanName, "Standard Access")
	memberName := orDefault(pass.MemberName, "Athlete")

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", pass.ToEmail)
	m.SetHeader("Subject", "Your Gymkaana Pass is Ready!")

	m.SetBody("text/plain", fmt.Sprintf(
		"Your booking for %s is confirmed. Use the attached QR code or the code %s for entry.",
		gymName, pass.ShortReference,
	))

	qr := ""
	if len(pass.QRCodePNG) > 0 {
		png := pass.QRCodePNG
		m.Embed(passImageName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}))
		qr = fmt.Sprintf(`<img src="cid:%s" alt="Booking QR Code" style="width: 200px; height: 200px;" />`, passImageName)
	}

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 15px; text-align: center;">
			<h2 style="color: #000;">Booking Confirmed!</h2>
			<p>Hi %s,</p>
			<p>Your session at <strong>%s</strong> is ready.</p>
			<div style="background: #f9f9f9; padding: 30px; border-radius: 20px; display: inline-block; margin: 20px 0;">
				%s
				<p style="letter-spacing: 4px; font-weight: bold;">%s</p>
			</div>
			<p style="font-size: 14px; color: #666;">Present this QR code at the reception when you arrive.</p>
			<div style="text-align: left; background: #fafafa; padding: 15px; border-radius: 10px; margin-top: 20px;">
				<p style="margin: 5px 0;"><strong>Plan:</strong> %s</p>
				<p style="margin: 5px 0;"><strong>Valid From:</strong> %s</p>
				<p style="margin: 5px 0;"><strong>Expires:</strong> %s</p>
			</div>
		</div>
	`,
		html.EscapeString(memberName),
		html.EscapeString(gymName),
		qr,
		html.EscapeString(pass.ShortReference),
		html.EscapeString(planName),
		pass.StartDate.Format("02 Jan 2006"),
		pass.EndDate.Format("02 Jan 2006"),
	)
	m.AddAlternative("text/html", body)

	return m
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
