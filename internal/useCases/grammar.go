package useCases

import (
	"regexp"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentStart
	IntentAddItems
	IntentRemove
	IntentCancel
	IntentSubmit
	IntentShow
	IntentHelp
)

func (i Intent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentAddItems:
		return "add_items"
	case IntentRemove:
		return "remove"
	case IntentCancel:
		return "cancel"
	case IntentSubmit:
		return "submit"
	case IntentShow:
		return "show"
	case IntentHelp:
		return "help"
	default:
		return "none"
	}
}

// Command результат разбора сообщения
type Command struct {
	Intent  Intent
	Payload string // только для IntentAddItems
}

type commandRule struct {
	intent  Intent
	exact   string
	pattern *regexp.Regexp // если задан, Payload = первая группа
}

// матчится вся строка целиком, многострочный payload не принимается
var orderPattern = regexp.MustCompile(`^/order\s(.*)$`)

// порядок важен: первое совпадение выигрывает
var commandTable = []commandRule{
	{intent: IntentStart, exact: "/start"},
	{intent: IntentAddItems, pattern: orderPattern},
	{intent: IntentRemove, exact: "/remove"},
	{intent: IntentCancel, exact: "/cancel"},
	{intent: IntentSubmit, exact: "/submit"},
	{intent: IntentShow, exact: "/orders"},
	{intent: IntentHelp, exact: "/help"},
}

// Classify чистая функция: без I/O, никогда не падает.
func Classify(msg domain.Message) Command {
	if !msg.HasText {
		return Command{Intent: IntentNone}
	}
	for _, rule := range commandTable {
		if rule.pattern != nil {
			if m := rule.pattern.FindStringSubmatch(msg.Text); m != nil {
				return Command{Intent: rule.intent, Payload: m[1]}
			}
			continue
		}
		if msg.Text == rule.exact {
			return Command{Intent: rule.intent}
		}
	}
	return Command{Intent: IntentNone}
}
