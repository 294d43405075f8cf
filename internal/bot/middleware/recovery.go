package middleware

import (
	"runtime/debug"

	"linkdrop-bot/internal/logger"
)

// Recovery handles panics and recovers from them
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new recovery middleware
func NewRecovery(log *logger.Logger) *Recovery {
	return &Recovery{logger: log}
}

// Recover recovers from a panic and logs it
func (r *Recovery) Recover() {
	if err := recover(); err != nil {
		r.logger.WithFields(map[string]interface{}{
			"panic": err,
			"stack": string(debug.Stack()),
		}).Error("Panic recovered")
	}
}
