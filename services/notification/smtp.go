package notification

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"lexdesk/config"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type sendFunc func(addr string, a sasl.Client, from string, to []string, msg *bytes.Reader) error

// SMTPMailer sends HTML email over SMTP behind a circuit breaker.
type SMTPMailer struct {
	addr    string
	from    mail.Address
	auth    sasl.Client
	send    sendFunc
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	now     func() time.Time
}

// NewSMTPMailer builds a mailer from the SMTP section of cfg.
func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) *SMTPMailer {
	var auth sasl.Client
	if cfg.SMTPUsername != "" {
		auth = sasl.NewPlainClient("", cfg.SMTPUsername, cfg.SMTPPassword)
	}

	send := func(addr string, a sasl.Client, from string, to []string, msg *bytes.Reader) error {
		return smtp.SendMail(addr, a, from, to, msg)
	}
	if cfg.SMTPImplicit {
		send = func(addr string, a sasl.Client, from string, to []string, msg *bytes.Reader) error {
			return smtp.SendMailTLS(addr, a, from, to, msg)
		}
	}

	return &SMTPMailer{
		addr:    net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from:    mail.Address{Name: cfg.SMTPFromName, Address: cfg.SMTPFrom},
		auth:    auth,
		send:    send,
		breaker: newBreaker(logger),
		logger:  logger,
		now:     time.Now,
	}
}

func newBreaker(logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state", zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
}

// Send renders e and delivers it.
func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.compose(e)
	if err != nil {
		return err
	}

	_, err = m.breaker.Execute(func() (interface{}, error) {
		return nil, m.send(m.addr, m.auth, m.from.Address, []string{e.To}, bytes.NewReader(msg))
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", e.To, err)
	}
	m.logger.Debug("Email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// compose builds the RFC 5322 message for e.
func (m *SMTPMailer) compose(e Email) ([]byte, error) {
	html, err := Render(e)
	if err != nil {
		return nil, err
	}

	var h mail.Header
	h.SetDate(m.now())
	h.SetSubject(e.Subject)
	h.SetAddressList("From", []*mail.Address{&m.from})
	h.SetAddressList("To", []*mail.Address{{Name: e.ToName, Address: e.To}})
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mime writer: %w", err)
	}
	if _, err := w.Write([]byte(html)); err != nil {
		return nil, fmt.Errorf("write mime body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mime writer: %w", err)
	}
	return buf.Bytes(), nil
}
