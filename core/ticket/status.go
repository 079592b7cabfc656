package ticket

import "strings"

type Status int

const (
	StatusUnknown Status = 0
	StatusActive  Status = 1
	StatusPending Status = 2
	StatusClosed  Status = 3
	StatusSpam    Status = 4
)

var statusByName = map[string]Status{
	"open":    StatusActive,
	"active":  StatusActive,
	"pending": StatusPending,
	"closed":  StatusClosed,
	"spam":    StatusSpam,
}

// ParseStatus maps a status name to its canonical code. "open" is an alias
// of "active".
func ParseStatus(name string) (Status, bool) {
	s, ok := statusByName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

func (s Status) IsValid() bool {
	return s >= StatusActive && s <= StatusSpam
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPending:
		return "pending"
	case StatusClosed:
		return "closed"
	case StatusSpam:
		return "spam"
	}
	return "unknown"
}
