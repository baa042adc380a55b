package useCases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

var (
	itemMargherita = domain.CatalogItem{ArticleID: "101", CommodityGroupID: "10", Name: "Margherita", Price: 18.5}
	itemHawaii     = domain.CatalogItem{ArticleID: "102", CommodityGroupID: "10", Name: "Hawaii", Price: 21}
	itemQuattro    = domain.CatalogItem{ArticleID: "103-L", ParentArticleID: "103", CommodityGroupID: "10", Name: "Quattro Formaggi", Price: 23.5}
	itemSalami     = domain.CatalogItem{ArticleID: "104", CommodityGroupID: "11", Name: "Salami", Price: 20}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	to   int64
	text string
}

type fakeReplier struct {
	mu     sync.Mutex
	group  []sentMessage
	direct []sentMessage
	err    error
}

func (r *fakeReplier) SendMessage(chatID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.group = append(r.group, sentMessage{to: chatID, text: text})
	return r.err
}

func (r *fakeReplier) SendDirectMessage(userID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.direct = append(r.direct, sentMessage{to: userID, text: text})
	return r.err
}

func (r *fakeReplier) groupTexts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.group))
	for _, m := range r.group {
		out = append(out, m.text)
	}
	return out
}

func (r *fakeReplier) last() string {
	texts := r.groupTexts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (r *fakeReplier) count(text string) int {
	n := 0
	for _, t := range r.groupTexts() {
		if t == text {
			n++
		}
	}
	return n
}

func (r *fakeReplier) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.group = nil
	r.direct = nil
}

type fakeMatcher struct {
	items map[string]domain.CatalogItem
}

func newFakeMatcher(items ...domain.CatalogItem) *fakeMatcher {
	m := &fakeMatcher{items: make(map[string]domain.CatalogItem)}
	for _, it := range items {
		m.items[strings.ToLower(it.Name)] = it
	}
	return m
}

func (m *fakeMatcher) Match(ctx context.Context, fragment string) (domain.CatalogItem, bool) {
	it, ok := m.items[strings.ToLower(strings.TrimSpace(fragment))]
	return it, ok
}

type fakeGate struct {
	denied map[int64]bool
}

func (g *fakeGate) IsEligible(ctx context.Context, chatID int64) bool {
	return !g.denied[chatID]
}

// fakeChannel отвечает кодом code; если release задан, ждёт его закрытия
type fakeChannel struct {
	mu       sync.Mutex
	code     int
	err      error
	release  chan struct{}
	payloads [][]byte
}

func (c *fakeChannel) Execute(ctx context.Context, payload []byte) (int, error) {
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
	return c.code, c.err
}

func (c *fakeChannel) calls() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.payloads...)
}

var errSendFailed = errors.New("send failed")

func textMessage(chatID, senderID int64, name, text string) domain.Message {
	return domain.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: name,
		Text:       text,
		HasText:    true,
	}
}
