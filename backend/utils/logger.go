package utils

import (
	"log"
	"os"
)

// InitLogger returns the process-wide request/application logger.
func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[MathLearn] ", log.LstdFlags|log.LUTC)
}
