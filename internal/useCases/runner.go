package useCases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg domain.Message)
}

// Runner читает входящие сообщения и обрабатывает их строго по одному
type Runner struct {
	client  ports.TelegramClient
	handler MessageHandler
	log     *slog.Logger
}

func NewRunner(client ports.TelegramClient, handler MessageHandler, log *slog.Logger) *Runner {
	return &Runner{client: client, handler: handler, log: log}
}

// Run блокируется до отмены ctx или закрытия канала сообщений
func (r *Runner) Run(ctx context.Context) error {
	messages, err := r.client.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	r.log.Info("dispatch loop started")

	for {
		select {
		case <-ctx.Done():
			r.log.Info("dispatch loop stopped", "reason", ctx.Err())
			return nil
		case msg, ok := <-messages:
			if !ok {
				r.log.Info("message channel closed")
				return nil
			}
			r.dispatch(ctx, msg)
		}
	}
}

// dispatch паника в обработчике не должна ронять цикл
func (r *Runner) dispatch(ctx context.Context, msg domain.Message) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("handler panic", "chat_id", msg.ChatID, "sender_id", msg.SenderID, "panic", rec)
		}
	}()
	r.handler.Handle(ctx, msg)
}
