package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
)

// slogRecoveryLogger adapts a *slog.Logger to handlers.RecoveryHandlerLogger.
type slogRecoveryLogger struct {
	logger *slog.Logger
}

func (l slogRecoveryLogger) Println(v ...any) {
	l.logger.Error("recovered from panic while serving request", "panic", fmt.Sprint(v...))
}

// Recover answers a request whose handler panicked with a 500 and logs the
// panic.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(slogRecoveryLogger{logger: logger}),
	)
}
