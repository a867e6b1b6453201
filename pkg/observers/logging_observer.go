// Package observers provides observers for monitoring approach changes
package observers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/anggasct/crosslight"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogWarning logs errors and warnings
	LogWarning
	// LogInfo logs errors, warnings, and info
	LogInfo
	// LogDebug logs errors, warnings, info, and debug
	LogDebug
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogError:
		return slog.LevelError
	case LogWarning:
		return slog.LevelWarn
	case LogDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// LoggingObserver logs approach events through slog
type LoggingObserver struct {
	crosslight.BaseObserver

	level  LogLevel
	logger *slog.Logger
	mutex  sync.RWMutex
}

// NewLoggingObserver creates a logging observer. A nil logger falls back to
// slog.Default.
func NewLoggingObserver(level LogLevel, logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		level:  level,
		logger: logger,
	}
}

// NewDefaultLoggingObserver logs at info level to slog.Default
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(LogInfo, nil)
}

// SetLevel changes the level filter
func (o *LoggingObserver) SetLevel(level LogLevel) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.level = level
}

func (o *LoggingObserver) log(level LogLevel, msg string, args ...any) {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if level <= o.level {
		o.logger.Log(context.Background(), level.slogLevel(), msg, args...)
	}
}

func approachAttrs(s crosslight.Status) []any {
	return []any{"node", s.Node, "segment", s.Segment}
}

// OnModeChange logs mode changes
func (o *LoggingObserver) OnModeChange(status crosslight.Status, from, to crosslight.Mode) {
	o.log(LogInfo, "mode changed", append(approachAttrs(status), "from", from.String(), "to", to.String())...)
}

// OnPublish logs published light states
func (o *LoggingObserver) OnPublish(update crosslight.Update) {
	o.log(LogDebug, "light state published", append(approachAttrs(update.Status),
		"update", update.ID,
		"tick", update.State.Tick,
		"vehicle", update.State.Vehicle.String(),
		"pedestrian", update.State.Pedestrian.String(),
	)...)
}

// OnToggle logs flipped signal heads
func (o *LoggingObserver) OnToggle(status crosslight.Status, group crosslight.Group, from, to crosslight.Light) {
	o.log(LogInfo, "light toggled", append(approachAttrs(status),
		"group", group.String(), "from", from.String(), "to", to.String())...)
}

// OnToggleIgnored logs toggles that had no effect
func (o *LoggingObserver) OnToggleIgnored(status crosslight.Status, group crosslight.Group, reason string) {
	o.log(LogWarning, "toggle ignored", append(approachAttrs(status), "group", group.String(), "reason", reason)...)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log(LogError, "observer error", "error", err)
}
