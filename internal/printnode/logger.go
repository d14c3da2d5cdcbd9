package printnode

import (
	"fmt"
	"log/slog"
	"strings"
)

// slogAdapter routes resty's printf-style logger into slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Errorf(format string, v ...any) {
	a.logger.Error(message(format, v), "component", "printnode")
}

func (a slogAdapter) Warnf(format string, v ...any) {
	a.logger.Warn(message(format, v), "component", "printnode")
}

func (a slogAdapter) Debugf(format string, v ...any) {
	a.logger.Debug(message(format, v), "component", "printnode")
}

func message(format string, v []any) string {
	return strings.TrimSpace(strings.TrimPrefix(fmt.Sprintf(format, v...), "RESTY "))
}
