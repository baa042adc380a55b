package domain

// Message описывает входящее сообщение из чата
type Message struct {
	ChatID     int64
	ChatName   string
	SenderID   int64
	SenderName string // display name, как его видят участники группы
	Username   string
	Text       string
	HasText    bool // false для фото без подписи, стикеров и т.п.
}
