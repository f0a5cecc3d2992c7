package backend

import "log/slog"

// Select chooses the compute backend once at startup. pref is "cpu",
// "arrow", or "auto". Any probe failure falls back to the CPU backend
// silently; missing acceleration never fails the caller.
func Select(pref string, log *slog.Logger) Backend {
	if log == nil {
		log = slog.Default()
	}
	switch pref {
	case "cpu":
		return NewCPU()
	case "arrow", "auto", "":
		a := NewArrow()
		if err := a.probe(); err != nil {
			log.Debug("accelerated backend unavailable, using cpu", "error", err)
			return NewCPU()
		}
		return a
	default:
		log.Debug("unknown backend preference, using cpu", "pref", pref)
		return NewCPU()
	}
}
