package persist

import "log/slog"

// Level of a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Toast messages emitted by the save sequence.
const (
	MsgSaved       = "Dashboard layout saved"
	MsgSavedLocal  = "Dashboard layout saved locally"
	MsgSaveFailed  = "Failed to save dashboard layout"
	MsgResetFailed = "Failed to reset dashboard layout"
)

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// LogNotifier writes notifications to a logger; used when there is no UI.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(level Level, message string) {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	if level == LevelError {
		log.Error(message, "toast", string(level))
		return
	}
	log.Info(message, "toast", string(level))
}
