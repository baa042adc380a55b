package tg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
	"github.com/zelenin/go-tdlib/client"
)

// TelegramClient реализует ports.TelegramClient и ports.EligibilityGate через TDLib
type TelegramClient struct {
	client *client.Client
	logger *slog.Logger
	selfId int64
}

type ClientMode int

const (
	ClientModeRuntime ClientMode = iota // боевой режим: GetMe, слушаем сообщения
	ClientModeAuth                      // режим авторизации: поднять TDLib, пройти логин в консоли и выйти
)

var ErrRateLimited = errors.New("tdlib: too many requests")

func NewClientFromJSON(
	apiID int32,
	apiHash string,
	baseDir string, // "/sessions"
	sessionName string, // "orderbot"
	log *slog.Logger,
	mode ClientMode,
) (*TelegramClient, error) {
	rawCfg, err := LoadRawSessionConfig(baseDir, sessionName)
	if err != nil {
		return nil, err
	}

	sessionDir := filepath.Join(baseDir, rawCfg.SessionFile)
	dbDir := filepath.Join(sessionDir, "database")
	filesDir := filepath.Join(sessionDir, "files")

	for _, dir := range []string{dbDir, filesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	tdParams := rawCfg.ToTdParams(apiID, apiHash, dbDir, filesDir)

	proxyCfg, err := rawCfg.ToProxyConfig()
	if err != nil {
		log.Error("parse proxy from json", "error", err)
	}
	probeNetwork(log, proxyCfg)

	var opts []client.Option
	if proxyCfg != nil && proxyCfg.Enabled {
		opts = append(opts, client.WithProxy(&client.AddProxyRequest{
			Server: proxyCfg.Server,
			Port:   proxyCfg.Port,
			Enable: true,
			Type: &client.ProxyTypeSocks5{
				Username: proxyCfg.Username,
				Password: proxyCfg.Password,
			},
		}))
	}

	authorizer := client.ClientAuthorizer(tdParams)
	if mode == ClientModeAuth {
		go client.CliInteractor(authorizer)
	}

	tdCli, err := client.NewClient(authorizer, opts...)
	if err != nil {
		log.Error("TDLib NewClient error", "session", rawCfg.SessionFile, "error", err)
		return nil, err
	}

	if mode == ClientModeAuth {
		log.Info("TDLib client started in AUTH mode", "session", rawCfg.SessionFile, "phone", rawCfg.Phone)
		return &TelegramClient{client: tdCli, logger: log}, nil
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "session", rawCfg.SessionFile, "error", err)
		tdCli.Close()
		return nil, err
	}

	log.Info("TDLib client initialized and authorized",
		"self_id", me.Id,
		"session", rawCfg.SessionFile,
	)

	return &TelegramClient{
		client: tdCli,
		logger: log,
		selfId: me.Id,
	}, nil
}

func (t *TelegramClient) Close() {
	t.client.Close()
}

// Listen возвращает канал доменных сообщений из TDLib
func (t *TelegramClient) Listen() (<-chan domain.Message, error) {
	out := make(chan domain.Message)

	listener := t.client.GetListener()
	go func() {
		defer close(out)
		for update := range listener.Updates {
			upd, ok := update.(*client.UpdateNewMessage)
			if !ok {
				continue
			}
			msg, ok := t.toDomainMessage(upd.Message)
			if !ok {
				continue
			}
			out <- msg
		}
	}()

	return out, nil
}

func (t *TelegramClient) toDomainMessage(m *client.Message) (domain.Message, bool) {
	if m == nil || m.IsOutgoing || m.IsChannelPost {
		return domain.Message{}, false
	}
	sender, ok := m.SenderId.(*client.MessageSenderUser)
	if !ok || sender.UserId == t.selfId {
		return domain.Message{}, false
	}

	msg := domain.Message{
		ChatID:   m.ChatId,
		SenderID: sender.UserId,
	}
	if content, ok := m.Content.(*client.MessageText); ok && content.Text != nil {
		msg.Text = content.Text.Text
		msg.HasText = true
	}
	// команды без текста всё равно игнорируются, имя не нужно
	if !msg.HasText {
		return msg, true
	}

	msg.SenderName, msg.Username = t.userNames(sender.UserId)
	return msg, true
}

// userNames отображаемое имя и @username, TDLib отдаёт их из локального кеша
func (t *TelegramClient) userNames(userID int64) (string, string) {
	usr, err := t.client.GetUser(&client.GetUserRequest{UserId: userID})
	if err != nil {
		t.logger.Warn("GetUser failed", "user_id", userID, "error", err)
		return fmt.Sprintf("user %d", userID), ""
	}

	var username string
	if usr.Usernames != nil && len(usr.Usernames.ActiveUsernames) > 0 {
		username = usr.Usernames.ActiveUsernames[0]
	}

	name := strings.TrimSpace(usr.FirstName + " " + usr.LastName)
	if name == "" {
		name = username
	}
	return name, username
}

// IsEligible пускает только обычные группы и супергруппы, не каналы и не личку.
func (t *TelegramClient) IsEligible(ctx context.Context, chatID int64) bool {
	chat, err := t.client.GetChat(&client.GetChatRequest{ChatId: chatID})
	if err != nil {
		t.logger.Error("GetChat failed", "chat_id", chatID, "error", err)
		return false
	}
	switch ct := chat.Type.(type) {
	case *client.ChatTypeBasicGroup:
		return true
	case *client.ChatTypeSupergroup:
		return !ct.IsChannel
	default:
		return false
	}
}

func (t *TelegramClient) SendMessage(chatID int64, text string) error {
	_, err := t.client.SendMessage(&client.SendMessageRequest{
		ChatId: chatID,
		InputMessageContent: &client.InputMessageText{
			Text:       &client.FormattedText{Text: text},
			ClearDraft: true,
		},
	})
	if err != nil {
		if isTooManyRequests(err) {
			t.logger.Error("SendMessage rate-limited: too many requests", "chat_id", chatID, "error", err)
			return ErrRateLimited
		}
		return fmt.Errorf("send to chat %d: %w", chatID, err)
	}
	return nil
}

// SendDirectMessage пишет пользователю в личку, открывая приватный чат при необходимости
func (t *TelegramClient) SendDirectMessage(userID int64, text string) error {
	chat, err := t.client.CreatePrivateChat(&client.CreatePrivateChatRequest{
		UserId: userID,
		Force:  false,
	})
	if err != nil {
		return fmt.Errorf("open private chat with %d: %w", userID, err)
	}
	return t.SendMessage(chat.Id, text)
}

func isTooManyRequests(err error) bool {
	// TDLib оборачивается в client.Error
	var tdErr *client.Error
	if errors.As(err, &tdErr) {
		// обычно Code == 429, но подстрахуемся по тексту
		if tdErr.Code == 429 {
			return true
		}
		if strings.Contains(strings.ToLower(tdErr.Message), "too many requests") {
			return true
		}
	}
	return false
}
