package useCases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/larriantoniy/tg_order_bot/internal/domain"
	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

// SubmissionOutcome итог передачи заказа исполнителю
type SubmissionOutcome struct {
	RequestID string
	ChatID    int64
	Err       error
}

func (o SubmissionOutcome) OK() bool {
	return o.Err == nil
}

type Submitter struct {
	log     *slog.Logger
	channel ports.FulfillmentChannel
}

func NewSubmitter(log *slog.Logger, channel ports.FulfillmentChannel) *Submitter {
	return &Submitter{log: log, channel: channel}
}

// NewRequest снимает копию строк, дальше запрос не зависит от сессии.
func NewRequest(chatID int64, lines []domain.OrderLine) domain.SubmissionRequest {
	snapshot := make([]domain.OrderLine, len(lines))
	copy(snapshot, lines)
	return domain.SubmissionRequest{
		ID:     uuid.NewString(),
		ChatID: chatID,
		Lines:  snapshot,
	}
}

// Submit не блокирует вызывающего. В канал приходит ровно один результат, после чего он закрывается.
// Отмены и таймаута нет: контекст вызывающего отвязывается от отправки.
func (s *Submitter) Submit(ctx context.Context, req domain.SubmissionRequest) <-chan SubmissionOutcome {
	out := make(chan SubmissionOutcome, 1)
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(out)
		out <- SubmissionOutcome{
			RequestID: req.ID,
			ChatID:    req.ChatID,
			Err:       s.execute(ctx, req),
		}
	}()

	return out
}

func (s *Submitter) execute(ctx context.Context, req domain.SubmissionRequest) (err error) {
	// паника исполнителя тоже неудача
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", domain.ErrFulfillmentFailed, r)
		}
		if err != nil {
			s.log.Error("Submission failed", "request_id", req.ID, "chat_id", req.ChatID, "error", err)
		}
	}()

	if len(req.Lines) == 0 {
		return domain.ErrEmptySubmission
	}

	payload, err := MarshalRequest(req)
	if err != nil {
		return err
	}

	s.log.Info("Submitting order",
		"request_id", req.ID,
		"chat_id", req.ChatID,
		"lines", len(req.Lines),
	)

	code, err := s.channel.Execute(ctx, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFulfillmentFailed, err)
	}
	if code != 0 {
		return &domain.ExitStatusError{Code: code}
	}

	s.log.Info("Order submitted", "request_id", req.ID, "chat_id", req.ChatID)
	return nil
}

// MarshalRequest сериализует заказ в массив {articleId, articleNumber, commodityGroupId}.
func MarshalRequest(req domain.SubmissionRequest) ([]byte, error) {
	records := make([]domain.FulfillmentRecord, 0, len(req.Lines))
	for _, l := range req.Lines {
		records = append(records, domain.NewFulfillmentRecord(l))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}
	return data, nil
}
