package logger

import (
	"fmt"
	"strings"
)

// CronLogger adapts Logger to robfig/cron's logger interface
type CronLogger struct {
	l Logger
}

func NewCronLogger(l Logger) *CronLogger {
	return &CronLogger{l: l}
}

func (c *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: %s%s", msg, formatKV(keysAndValues))
}

func (c *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: %s: %v%s", msg, err, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < len(kv); i += 2 {
		sb.WriteByte(' ')
		if i+1 < len(kv) {
			sb.WriteString(fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
		} else {
			sb.WriteString(fmt.Sprintf("%v", kv[i]))
		}
	}
	return sb.String()
}
