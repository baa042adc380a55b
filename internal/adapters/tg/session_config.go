package tg

import (
	"fmt"

	"github.com/larriantoniy/tg_order_bot/internal/ports"
	"github.com/zelenin/go-tdlib/client"
)

// RawSessionConfig конфиг сессии TDLib, лежит рядом с базой: <base_dir>/<session>/config.json
type RawSessionConfig struct {
	SessionFile string `json:"session_file"`
	Phone       string `json:"phone"`

	// если заданы, перекрывают TELEGRAM_API_ID / TELEGRAM_API_HASH
	AppID   int32  `json:"app_id"`
	AppHash string `json:"app_hash"`

	SDK        string `json:"sdk"`         // SystemVersion
	AppVersion string `json:"app_version"` // ApplicationVersion
	Device     string `json:"device"`      // DeviceModel
	LangCode   string `json:"lang_code"`   // SystemLanguageCode

	Proxy []any `json:"proxy"` // [type, host, port, useAuth, user, pass]
}

func (c *RawSessionConfig) ToProxyConfig() (*ports.ProxyConfig, error) {
	if len(c.Proxy) == 0 {
		return nil, nil
	}
	if len(c.Proxy) < 6 {
		return nil, fmt.Errorf("invalid proxy length: %d", len(c.Proxy))
	}

	host, _ := c.Proxy[1].(string)

	// port приходит как float64 из json.Unmarshal
	var port int32
	switch v := c.Proxy[2].(type) {
	case float64:
		port = int32(v)
	case int:
		port = int32(v)
	default:
		return nil, fmt.Errorf("invalid proxy port type %T", c.Proxy[2])
	}

	if host == "" || port == 0 {
		return nil, nil
	}

	p := &ports.ProxyConfig{
		Enabled: true,
		Server:  host,
		Port:    port,
	}
	if useAuth, _ := c.Proxy[3].(bool); useAuth {
		p.Username, _ = c.Proxy[4].(string)
		p.Password, _ = c.Proxy[5].(string)
	}
	return p, nil
}

func (c *RawSessionConfig) ToTdParams(apiID int32, apiHash string, dbDir, filesDir string) *client.SetTdlibParametersRequest {
	if c.AppID != 0 && c.AppHash != "" {
		apiID, apiHash = c.AppID, c.AppHash
	}

	return &client.SetTdlibParametersRequest{
		UseTestDc:           false,
		DatabaseDirectory:   dbDir,
		FilesDirectory:      filesDir,
		UseFileDatabase:     false,
		UseChatInfoDatabase: true,
		UseMessageDatabase:  true,
		UseSecretChats:      false,
		ApiId:               apiID,
		ApiHash:             apiHash,
		SystemLanguageCode:  orDefault(c.LangCode, "en"),
		DeviceModel:         orDefault(c.Device, "Server"),
		SystemVersion:       orDefault(c.SDK, "Linux"),
		ApplicationVersion:  orDefault(c.AppVersion, "1.0"),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
