package worker

// email_worker.go sends the budget summary PDF produced by a recalculation.

import (
	"context"
	"encoding/json"
	"errors"

	"orcaobra/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// Remetente sends one message. *infra.Mailer implements it.
type Remetente interface {
	Enviar(msg infra.Mensagem) error
}

type EmailWorker struct {
	mailer Remetente
}

func NewEmailWorker(mailer Remetente) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends the email, retrying transient SMTP failures. A missing
// recipient is dropped; an unconfigured relay goes to the DLQ so the
// message can be replayed once SMTP is set up.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	msg := infra.Mensagem{
		Para:    []string{payload.ToEmail},
		Assunto: payload.Subject,
		Corpo:   payload.Body,
	}
	if payload.PDFPath != "" {
		msg.Anexos = []string{payload.PDFPath}
	}

	// an unconfigured relay is not retried
	var semSMTP error
	err := withRetry(ctx, MaxTentativasJob, backoffBase, func(int) error {
		err := w.mailer.Enviar(msg)
		if errors.Is(err, infra.ErrSMTPNaoConfigurado) {
			semSMTP = err
			return nil
		}
		return err
	})
	if semSMTP != nil {
		return semSMTP
	}
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: resumo enviado")
	return nil
}
