package fulfillment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// Script запускает внешний сценарий заказа: <bin> <script> <json>.
// Успех только при коде 0.
type Script struct {
	bin    string // "node"
	script string // "pizza-ordering/app.js"
	logger *slog.Logger
}

func NewScript(bin, script string, logger *slog.Logger) *Script {
	return &Script{bin: bin, script: script, logger: logger}
}

func (s *Script) Execute(ctx context.Context, payload []byte) (int, error) {
	cmd := exec.CommandContext(ctx, s.bin, s.script, string(payload))

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	s.logger.Info("running fulfillment script", "bin", s.bin, "script", s.script)

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		s.logger.Debug("fulfillment script finished", "output", out.String())
		return 0, nil
	case errors.As(err, &exitErr):
		s.logger.Warn("fulfillment script exited with error",
			"code", exitErr.ExitCode(),
			"output", out.String(),
		)
		return exitErr.ExitCode(), nil
	default:
		return -1, fmt.Errorf("run %s: %w", s.bin, err)
	}
}
