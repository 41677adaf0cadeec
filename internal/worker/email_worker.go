package worker

// email_worker.go
// Processes QueueEmail jobs: mails a generated PDF to the buyer.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type mailer interface {
	Enabled() bool
	SendDocumento(to, subject, body, pdfPath string) error
}

type EmailWorker struct {
	mailer  mailer
	backoff time.Duration
}

func NewEmailWorker(m mailer) *EmailWorker {
	return &EmailWorker{mailer: m, backoff: time.Second}
}

// Process sends the email, retrying with exponential backoff. The final
// error sends the job to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}
	if !w.mailer.Enabled() {
		log.Debug().Str("to", payload.ToEmail).Msg("email_worker: SMTP not configured, skipping")
		return nil
	}

	err := withRetry(ctx, maxEmailAttempts, w.backoff, func(attempt int) error {
		err := w.mailer.SendDocumento(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", payload.ToEmail).Msg("email_worker: send failed")
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("email_worker: %w", err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: documento enviado")
	return nil
}

// withRetry calls fn up to maxAttempts times, waiting base, 2·base, 4·base…
// between attempts. Returns the last error when every attempt fails.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(base << uint(i-1)):
			}
		}
		if lastErr = fn(i); lastErr == nil {
			return nil
		}
	}
	return lastErr
}
