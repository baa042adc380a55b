package useCases

import (
	"fmt"
	"strings"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

// OrderSession текущий незакрытый заказ. Живёт только внутри Engine,
// наружу отдаются копии строк.
type OrderSession struct {
	chatID  int64
	senders []int64 // порядок, в котором участники впервые что-то добавили
	lines   map[int64][]domain.OrderLine
}

func newOrderSession(chatID int64) *OrderSession {
	return &OrderSession{
		chatID: chatID,
		lines:  make(map[int64][]domain.OrderLine),
	}
}

func (s *OrderSession) ChatID() int64 {
	return s.chatID
}

func (s *OrderSession) HasLines(senderID int64) bool {
	return len(s.lines[senderID]) > 0
}

func (s *OrderSession) AddLine(line domain.OrderLine) {
	if _, ok := s.lines[line.SenderID]; !ok {
		s.senders = append(s.senders, line.SenderID)
	}
	s.lines[line.SenderID] = append(s.lines[line.SenderID], line)
}

// RemoveLines удаляет все позиции участника
func (s *OrderSession) RemoveLines(senderID int64) {
	if _, ok := s.lines[senderID]; !ok {
		return
	}
	delete(s.lines, senderID)
	for i, id := range s.senders {
		if id == senderID {
			s.senders = append(s.senders[:i], s.senders[i+1:]...)
			break
		}
	}
}

func (s *OrderSession) IsEmpty() bool {
	for _, l := range s.lines {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// Lines снимок всех позиций: по участникам, внутри участника в порядке ввода.
func (s *OrderSession) Lines() []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(s.senders))
	for _, id := range s.senders {
		out = append(out, s.lines[id]...)
	}
	return out
}

// Summary форматирует список позиций с итоговой суммой.
func Summary(lines []domain.OrderLine) string {
	var b strings.Builder
	var total float64
	for _, l := range lines {
		fmt.Fprintf(&b, "\n- %s: %s (%s)", l.SenderName, l.Item.Name, formatPrice(l.Item.Price))
		total += l.Item.Price
	}
	b.WriteString("\n\nTotal: ")
	b.WriteString(formatPrice(total))
	return b.String()
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}
