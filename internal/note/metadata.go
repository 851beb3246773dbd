package note

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Status is the lifecycle state of a note.
type Status int

const (
	Todo Status = iota
	InProgress
	Done
	Archived
)

// Statuses lists the lifecycle in cycling order.
var Statuses = []Status{Todo, InProgress, Done, Archived}

var statusLabels = map[Status]string{
	Todo:       "Todo",
	InProgress: "In Progress",
	Done:       "Done",
	Archived:   "Archived",
}

func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[Todo]
}

// Short is the single letter indicator used in list rows.
func (s Status) Short() string {
	return s.String()[:1]
}

// Next advances Todo → In Progress → Done → Archived → Todo.
func (s Status) Next() Status {
	return Statuses[(s.index()+1)%len(Statuses)]
}

func (s Status) index() int {
	for i, candidate := range Statuses {
		if candidate == s {
			return i
		}
	}
	return 0
}

// ParseStatus accepts the label with or without spaces, in any case.
func ParseStatus(input string) (Status, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	for _, s := range Statuses {
		if strings.ToLower(strings.ReplaceAll(s.String(), " ", "")) == key {
			return s, true
		}
	}
	return Todo, false
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText maps unknown labels to Todo instead of failing the record.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, _ := ParseStatus(string(text))
	*s = parsed
	return nil
}

// Priority is the optional A/B/C importance of a note.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityA
	PriorityB
	PriorityC
)

// Priorities lists the cycling order, starting from none.
var Priorities = []Priority{PriorityNone, PriorityA, PriorityB, PriorityC}

func (p Priority) String() string {
	switch p {
	case PriorityA:
		return "A"
	case PriorityB:
		return "B"
	case PriorityC:
		return "C"
	default:
		return ""
	}
}

// Label is String with an explicit "None".
func (p Priority) Label() string {
	if p == PriorityNone {
		return "None"
	}
	return p.String()
}

// Next advances None → A → B → C → None.
func (p Priority) Next() Priority {
	for i, candidate := range Priorities {
		if candidate == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityA
}

// ParsePriority accepts "A", "b", "none" or "".
func ParsePriority(input string) (Priority, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "A":
		return PriorityA, true
	case "B":
		return PriorityB, true
	case "C":
		return PriorityC, true
	case "", "NONE":
		return PriorityNone, true
	}
	return PriorityNone, false
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if p == PriorityNone {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = PriorityNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = PriorityNone
		return nil
	}
	parsed, _ := ParsePriority(raw)
	*p = parsed
	return nil
}
