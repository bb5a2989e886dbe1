package domain

import "fmt"

type Cadence string

const (
	CadenceDaily      Cadence = "daily"
	CadencePerSession Cadence = "per_session"
)

func (c Cadence) Valid() bool {
	return c == CadenceDaily || c == CadencePerSession
}

// ParseCadence accepts the stored names plus the "session" shorthand.
func ParseCadence(s string) (Cadence, error) {
	switch s {
	case "daily", "":
		return CadenceDaily, nil
	case "per_session", "per-session", "session":
		return CadencePerSession, nil
	default:
		return "", fmt.Errorf("unknown cadence %q (want daily or per_session)", s)
	}
}

type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionAvailable SessionStatus = "available"
	SessionMissed    SessionStatus = "missed"
	SessionCompleted SessionStatus = "completed"
)
