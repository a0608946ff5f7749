package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"orcaobra/internal/config"

	"github.com/jordan-wright/email"
)

var ErrSMTPNaoConfigurado = errors.New("smtp: host not configured")

// Mensagem is one outgoing email with optional file attachments.
type Mensagem struct {
	Para    []string
	Assunto string
	Corpo   string
	Anexos  []string
}

// Mailer sends mail through an authenticated SMTP relay.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// montar builds the email without sending it.
func (m *Mailer) montar(msg Mensagem) (*email.Email, error) {
	if len(msg.Para) == 0 {
		return nil, errors.New("mailer: no recipients")
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = msg.Para
	e.Subject = msg.Assunto
	e.Text = []byte(msg.Corpo)

	for _, path := range msg.Anexos {
		if _, err := e.AttachFile(path); err != nil {
			return nil, fmt.Errorf("mailer: attach %s: %w", path, err)
		}
	}
	return e, nil
}

func (m *Mailer) Enviar(msg Mensagem) error {
	if m.host == "" {
		return ErrSMTPNaoConfigurado
	}
	e, err := m.montar(msg)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
