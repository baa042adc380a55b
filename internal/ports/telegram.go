package ports

import "github.com/larriantoniy/tg_order_bot/internal/domain"

// Replier отправляет ответы бота. Должен быть безопасен для вызова из нескольких горутин:
// результат отправки заказа приходит асинхронно.
type Replier interface {
	// SendMessage пишет в групповой чат
	SendMessage(chatID int64, text string) error
	// SendDirectMessage пишет лично пользователю, не в группу
	SendDirectMessage(userID int64, text string) error
}

// TelegramClient определяет интерфейс для работы с Telegram
// Реализуется конкретными адаптерами (TDLib, Bot API и т.д.).
type TelegramClient interface {
	Replier
	// Listen возвращает канал доменных сообщений
	Listen() (<-chan domain.Message, error)
	Close()
}
