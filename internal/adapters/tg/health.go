package tg

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

const (
	probeTimeout      = 3 * time.Second
	proxyProbeTimeout = 5 * time.Second
)

// probeNetwork только пишет в лог, запуск не блокирует
func probeNetwork(logger *slog.Logger, proxyCfg *ports.ProxyConfig) {
	dial(logger, "tcp4", "8.8.8.8:53", probeTimeout)
	dial(logger, "tcp6", "[2606:4700:4700::1111]:53", probeTimeout)
	checkProxy(logger, proxyCfg)
}

func dial(logger *slog.Logger, network, addr string, timeout time.Duration) bool {
	conn, err := net.DialTimeout(network, addr, timeout)
	if err != nil {
		logger.Warn("connectivity check failed", "network", network, "addr", addr, "error", err)
		return false
	}
	_ = conn.Close()
	logger.Debug("connectivity check ok", "network", network, "addr", addr)
	return true
}

func checkProxy(logger *slog.Logger, proxyCfg *ports.ProxyConfig) {
	if proxyCfg == nil || !proxyCfg.Enabled {
		logger.Info("proxy disabled, skipping check")
		return
	}

	addr := net.JoinHostPort(proxyCfg.Server, strconv.Itoa(int(proxyCfg.Port)))

	// IP-литерал проверяем в своей сети, hostname: сначала IPv6, потом IPv4
	networks := []string{"tcp6", "tcp4"}
	if ip := net.ParseIP(proxyCfg.Server); ip != nil {
		networks = []string{"tcp6"}
		if ip.To4() != nil {
			networks = []string{"tcp4"}
		}
	}

	for _, network := range networks {
		if dial(logger, network, addr, proxyProbeTimeout) {
			logger.Info("proxy reachable", "network", network, "addr", addr)
			return
		}
	}
	logger.Error("proxy unreachable", "addr", addr, "tried", fmt.Sprint(networks))
}
