package worker

// recalculo_worker.go runs the full budget recalculation of a revision
// (labor cost, summary, cashflow) and optionally emails the summary PDF.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxTentativasJob = 3
	backoffBase      = time.Second
)

// RecalculoJobPayload is the job envelope sent to QueueRecalculo.
type RecalculoJobPayload struct {
	RevisaoID string `json:"revisao_id"`
	Email     string `json:"email,omitempty"`
}

// Recalculador executes the recalculation chain and, when gerarPDF is set,
// returns the stored summary PDF path.
type Recalculador interface {
	Executar(ctx context.Context, revisaoID uuid.UUID, gerarPDF bool) (string, error)
}

// EmailEnqueuer pushes email jobs. *Dispatcher implements it.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type RecalculoWorker struct {
	recalculador Recalculador
	emails       EmailEnqueuer
	backoff      time.Duration
}

func NewRecalculoWorker(recalculador Recalculador, emails EmailEnqueuer) *RecalculoWorker {
	return &RecalculoWorker{recalculador: recalculador, emails: emails, backoff: backoffBase}
}

// Process handles a single recalculo job:
//  1. Parse RecalculoJobPayload
//  2. Run the recalculation chain with exponential backoff
//  3. Enqueue the summary email when a recipient was given
func (w *RecalculoWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload RecalculoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	revisaoID, err := uuid.Parse(payload.RevisaoID)
	if err != nil {
		return fmt.Errorf("invalid revisao_id %q: %w", payload.RevisaoID, err)
	}
	gerarPDF := payload.Email != ""

	var pdfPath string
	err = withRetry(ctx, MaxTentativasJob, w.backoff, func(attempt int) error {
		path, err := w.recalculador.Executar(ctx, revisaoID, gerarPDF)
		if err != nil {
			log.Warn().
				Err(err).
				Str("revisao_id", payload.RevisaoID).
				Int("attempt", attempt+1).
				Msg("recalculo_worker: attempt failed")
			return err
		}
		pdfPath = path
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("revisao_id", payload.RevisaoID).Msg("recalculo_worker: recalculation failed")
		return err
	}

	log.Info().Str("revisao_id", payload.RevisaoID).Msg("recalculo_worker: revisão recalculada")

	if !gerarPDF {
		return nil
	}
	return w.emails.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.Email,
		Subject: "Resumo do orçamento",
		Body:    fmt.Sprintf("Segue em anexo o resumo do orçamento da revisão %s.", revisaoID),
		PDFPath: pdfPath,
	})
}
