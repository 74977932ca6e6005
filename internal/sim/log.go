package sim

import "log/slog"

// LogObserver writes every session event to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (l *LogObserver) OnEvent(e Event) {
	attrs := []any{
		"mode", e.Mode.String(),
		"position", e.Position.String(),
		"completed", e.Completed,
	}
	switch e.Kind {
	case EventParams, EventRecompute:
		attrs = append(attrs,
			"probability", e.Params.RightProbability,
			"units", e.Params.TotalUnits,
		)
	case EventChoice:
		attrs = append(attrs, "direction", e.Direction.String())
	}
	l.logger.Debug("session "+e.Kind.String(), attrs...)
}
