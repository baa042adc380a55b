package useCases

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

const (
	textStarted       = "Order started. Add items to the order by sending a message starting with /order, e.g., /order Quattro formaggi"
	textAlreadyActive = "There is already an ongoing order."
	textNoOrder       = "There is no ongoing order."
	textNoOrderCancel = "There was no ongoing order."
	textCancelled     = "Order cancelled."
	textNothingAdded  = "Nothing was added to this order yet."
	textCurrentOrders = "Current orders:\n"
	textSubmitted     = "Order submitted. Your food will arrive in approximately 40 minutes.\n\n\nOrder Summary:\n"
	textSubmitOK      = "It's all good man"
	textSubmitFailed  = "Something went wrong"
	textNoMatch       = "No matching item found for: "
	textHawaiiSuffix  = ", who is a weirdo that likes pineapples on their pizza"

	textHelp = "/help : show this help\n" +
		"/start : start a new pizza order\n" +
		"/cancel : cancel the current pizza order\n" +
		"/orders : show the currently registered orders\n" +
		"/order [pizza] : add a pizza with given name to the order\n" +
		"/remove : remove your order\n" +
		"/submit : submit the order to Dieci"
)

var fragmentSeparator = regexp.MustCompile(`;| and | & `)

// Submission отдаёт результат отправки через канал, см. Submitter.
type Submission interface {
	Submit(ctx context.Context, req domain.SubmissionRequest) <-chan SubmissionOutcome
}

// Engine единственный владелец сессии заказа. Сессия одна на весь процесс,
// не на чат: пока одна группа собирает заказ, /start из другой получит "already ongoing".
type Engine struct {
	log     *slog.Logger
	replier ports.Replier
	gate    ports.EligibilityGate
	matcher ports.MenuMatcher
	submit  Submission

	mu      sync.Mutex
	session *OrderSession

	pending sync.WaitGroup // горутины, ждущие результат отправки
}

func NewEngine(
	log *slog.Logger,
	replier ports.Replier,
	gate ports.EligibilityGate,
	matcher ports.MenuMatcher,
	submit Submission,
) *Engine {
	return &Engine{
		log:     log,
		replier: replier,
		gate:    gate,
		matcher: matcher,
		submit:  submit,
	}
}

// Handle обрабатывает одно входящее сообщение целиком. Ошибки отправки ответов
// логируются и не пробрасываются.
func (e *Engine) Handle(ctx context.Context, msg domain.Message) {
	if e.gate != nil && !e.gate.IsEligible(ctx, msg.ChatID) {
		return
	}

	cmd := Classify(msg)
	if cmd.Intent == IntentNone {
		return
	}

	e.log.Debug("Command received",
		"intent", cmd.Intent.String(),
		"chat_id", msg.ChatID,
		"sender_id", msg.SenderID,
	)

	e.mu.Lock()
	defer e.mu.Unlock()

	switch cmd.Intent {
	case IntentStart:
		e.start(msg)
	case IntentAddItems:
		e.addItems(ctx, msg, cmd.Payload)
	case IntentRemove:
		e.remove(msg)
	case IntentCancel:
		e.cancel(msg)
	case IntentSubmit:
		e.submitOrder(ctx, msg)
	case IntentShow:
		e.show(msg)
	case IntentHelp:
		e.reply(msg.ChatID, textHelp)
	}
}

// Wait дожидается ответов по всем отправленным заказам. Нужен при остановке и в тестах.
func (e *Engine) Wait() {
	e.pending.Wait()
}

// HasSession сессия есть и принадлежит этому чату
func (e *Engine) HasSession(chatID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeFor(chatID) != nil
}

// Lines копия позиций активной сессии чата, nil если сессии нет.
func (e *Engine) Lines(chatID int64) []domain.OrderLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.activeFor(chatID)
	if s == nil {
		return nil
	}
	return s.Lines()
}

func (e *Engine) activeFor(chatID int64) *OrderSession {
	if e.session == nil || e.session.ChatID() != chatID {
		return nil
	}
	return e.session
}

func (e *Engine) start(msg domain.Message) {
	if e.session != nil {
		e.reply(msg.ChatID, textAlreadyActive)
		return
	}
	e.session = newOrderSession(msg.ChatID)
	e.log.Info("Order started", "chat_id", msg.ChatID, "sender_id", msg.SenderID)
	e.reply(msg.ChatID, textStarted)
}

func (e *Engine) cancel(msg domain.Message) {
	if e.activeFor(msg.ChatID) == nil {
		e.reply(msg.ChatID, textNoOrderCancel)
		return
	}
	e.session = nil
	e.log.Info("Order cancelled", "chat_id", msg.ChatID, "sender_id", msg.SenderID)
	e.reply(msg.ChatID, textCancelled)
}

func (e *Engine) show(msg domain.Message) {
	s := e.activeFor(msg.ChatID)
	if s == nil {
		e.reply(msg.ChatID, textNoOrder)
		return
	}
	if s.IsEmpty() {
		e.reply(msg.ChatID, textNothingAdded)
		return
	}
	e.reply(msg.ChatID, textCurrentOrders+Summary(s.Lines()))
}

func (e *Engine) remove(msg domain.Message) {
	s := e.activeFor(msg.ChatID)
	if s == nil {
		e.reply(msg.ChatID, textNoOrder)
		return
	}
	s.RemoveLines(msg.SenderID)
	e.reply(msg.ChatID, "Removed order for "+msg.SenderName+".")
}

func (e *Engine) addItems(ctx context.Context, msg domain.Message, payload string) {
	s := e.activeFor(msg.ChatID)
	if s == nil {
		e.reply(msg.ChatID, textNoOrder)
		return
	}
	if e.matcher == nil {
		return
	}

	hadLines := s.HasLines(msg.SenderID)
	s.RemoveLines(msg.SenderID)

	var names []string
	for _, fragment := range SplitFragments(payload) {
		item, ok := e.matcher.Match(ctx, fragment)
		if !ok {
			e.replyDirect(msg.SenderID, textNoMatch+fragment)
			continue
		}
		s.AddLine(domain.OrderLine{
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Item:       item,
		})
		names = append(names, item.Name)
	}

	// ничего не нашли: в группу не пишем, отказы уже ушли в личку
	if len(names) == 0 {
		return
	}

	joined := strings.Join(names, ", ")
	var text string
	if hadLines {
		text = "Updated order to \"" + joined + "\" for " + msg.SenderName
	} else {
		text = "Added \"" + joined + "\" to the order for " + msg.SenderName
	}
	if strings.Contains(strings.ToLower(joined), "hawaii") {
		text += textHawaiiSuffix
	}
	e.reply(msg.ChatID, text)
}

func (e *Engine) submitOrder(ctx context.Context, msg domain.Message) {
	s := e.activeFor(msg.ChatID)
	if s == nil {
		e.reply(msg.ChatID, textNoOrder)
		return
	}
	if s.IsEmpty() {
		e.reply(msg.ChatID, textNothingAdded)
		return
	}

	req := NewRequest(msg.ChatID, s.Lines())
	e.session = nil

	results := e.submit.Submit(ctx, req)
	e.pending.Add(1)
	go e.awaitOutcome(results)

	e.log.Info("Order handed off", "chat_id", msg.ChatID, "request_id", req.ID, "lines", len(req.Lines))
	e.reply(msg.ChatID, textSubmitted+Summary(req.Lines))
}

// awaitOutcome не трогает сессию: к этому моменту она уже сброшена или принадлежит другому заказу.
func (e *Engine) awaitOutcome(results <-chan SubmissionOutcome) {
	defer e.pending.Done()
	outcome, ok := <-results
	if !ok {
		return
	}
	if outcome.OK() {
		e.reply(outcome.ChatID, textSubmitOK)
		return
	}
	e.reply(outcome.ChatID, textSubmitFailed)
}

func (e *Engine) reply(chatID int64, text string) {
	if err := e.replier.SendMessage(chatID, text); err != nil {
		e.log.Error("SendMessage failed", "chat_id", chatID, "error", err)
	}
}

func (e *Engine) replyDirect(userID int64, text string) {
	if err := e.replier.SendDirectMessage(userID, text); err != nil {
		e.log.Error("SendDirectMessage failed", "user_id", userID, "error", err)
	}
}

// SplitFragments режет payload по ";", " and ", " & ". Если разделитель нашёлся,
// хвостовые пустые куски отбрасываются, остальные пустые уходят в матчер как есть.
func SplitFragments(payload string) []string {
	parts := fragmentSeparator.Split(payload, -1)
	if len(parts) == 1 {
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
