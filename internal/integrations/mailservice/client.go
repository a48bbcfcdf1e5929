package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с почтовым сервисом
// Все отправки fire-and-forget с точки зрения вызывающего кода:
// сбой доставки логируется и никогда не влияет на исход транзакции бронирования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendVerificationLink отправляет клиенту ссылку подтверждения бронирования
func (c *Client) SendVerificationLink(ctx context.Context, email, link string) error {
	body := fmt.Sprintf(`<p>Hello,</p>

<p>Please confirm your booking by following the link below within 30 minutes:</p>

<p><a href="%s">%s</a></p>

<p>If you did not request this booking, you can ignore this email.</p>

<p>Best regards,<br>Clockly Team</p>`, link, link)

	return c.send(ctx, sendRequest{
		To:      email,
		Subject: "Confirm your booking",
		Body:    body,
		HTML:    true,
	})
}

// SendAppointmentConfirmed отправляет письмо-подтверждение с календарным приглашением (.ics)
func (c *Client) SendAppointmentConfirmed(ctx context.Context, details AppointmentDetails) error {
	icsData, err := buildInvite(details)
	if err != nil {
		return fmt.Errorf("%w: failed to build calendar invite: %v", ErrInternal, err)
	}

	body := fmt.Sprintf(`<p>Hello %s,</p>

<p>Thank you for booking your appointment with us!</p>

<p><strong>Appointment Details:</strong></p>
<ul>
<li>Service: %s</li>
<li>Date: %s</li>
<li>Start Time: %s</li>
<li>End Time: %s</li>
</ul>

<p>We look forward to seeing you!</p>

<p>Best regards,<br>Clockly Team</p>`,
		details.CustomerName,
		details.ServiceName,
		details.Date.Format("2006-01-02"),
		details.Start.Format("15:04"),
		details.End.Format("15:04"),
	)

	filename := fmt.Sprintf("appointment-%s-%s.ics",
		strings.ReplaceAll(details.CustomerName, " ", "_"),
		details.Date.Format("2006-01-02"),
	)

	return c.send(ctx, sendRequest{
		To:      details.CustomerEmail,
		Subject: fmt.Sprintf("Your Appointment: %s", details.ServiceName),
		Body:    body,
		HTML:    true,
		Attachments: []attachment{{
			Filename:    filename,
			ContentType: "text/calendar",
			Data:        icsData,
		}},
	})
}

// SendReminder отправляет напоминание о скором начале бронирования
func (c *Client) SendReminder(ctx context.Context, email, customerName, serviceName string, start time.Time) error {
	body := fmt.Sprintf("Dear %s,\n\nYour booking for %s is starting at %s. Please be prepared.",
		customerName, serviceName, start.Format("15:04"))

	return c.send(ctx, sendRequest{
		To:      email,
		Subject: "Reminder: Your booking starts soon",
		Body:    body,
	})
}

// SendRegistrationCode отправляет код подтверждения регистрации
func (c *Client) SendRegistrationCode(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("Hello,\n\nThanks for registration at Clockly!\n\nYour registration code is: %s\n\nBest regards,\nClockly Team",
		formatCode(code))

	return c.send(ctx, sendRequest{
		To:      email,
		Subject: "Registration Code",
		Body:    body,
	})
}

// SendRegistrationSuccess отправляет письмо об успешной активации аккаунта
func (c *Client) SendRegistrationSuccess(ctx context.Context, email string) error {
	body := "Hello,\n\nYour account has been successfully verified and activated.\n\nYou can now log in and start using Clockly!\n\nBest regards,\nThe Clockly Team"

	return c.send(ctx, sendRequest{
		To:      email,
		Subject: "Welcome to Clockly!",
		Body:    body,
	})
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	url := c.baseURL + "/internal/mail/send"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Mail sent to %s: %s", payload.To, payload.Subject)
	return nil
}

// buildInvite собирает календарное приглашение VEVENT для бронирования
func buildInvite(details AppointmentDetails) ([]byte, error) {
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("Appointment: %s", details.ServiceName))
	event.Props.SetText(ical.PropDescription, fmt.Sprintf("Your appointment for %s.", details.ServiceName))
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, details.Start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, details.End)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//clockly//booking-service//EN")
	cal.Children = append(cal.Children, event)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// formatCode разбивает код на группы по 3 цифры для читаемости
func formatCode(code string) string {
	groups := make([]string, 0, (len(code)+2)/3)
	for i := 0; i < len(code); i += 3 {
		end := i + 3
		if end > len(code) {
			end = len(code)
		}
		groups = append(groups, code[i:end])
	}
	return strings.Join(groups, " ")
}
