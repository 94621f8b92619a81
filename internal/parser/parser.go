// Package parser turns Claude Code JSONL session logs into Session records.
package parser

import (
	"encoding/json"
	"time"
)

// Usage holds the token counters attached to an assistant message.
type Usage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// Event is a single timestamped activity record from a session log.
// Usage is nil for events that carry no token information; that is distinct
// from an all-zero Usage.
type Event struct {
	Timestamp time.Time
	Directory string
	Usage     *Usage
}

// Session is the assembled record for one session file.
type Session struct {
	Start          time.Time
	End            time.Time
	ActiveDuration time.Duration
	Project        string

	InputTokens              int64
	OutputTokens             int64
	CacheCreationInputTokens int64
	CacheReadInputTokens     int64
}

// jsonRow mirrors the subset of a JSONL log line we care about.
type jsonRow struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	CWD       string          `json:"cwd"`
	Message   *messageWrapper `json:"message"`
}

type messageWrapper struct {
	Usage *Usage `json:"usage"`
}

// ParseLine parses a single JSONL line into an Event. Lines that are not
// user or assistant messages, or that fail to parse, yield (Event{}, false)
// and are never an error: log files interleave many record types we ignore.
func ParseLine(line string) (Event, bool) {
	var row jsonRow
	if err := json.Unmarshal([]byte(line), &row); err != nil {
		return Event{}, false
	}
	if row.Type != "user" && row.Type != "assistant" {
		return Event{}, false
	}
	ts, err := time.Parse(time.RFC3339, row.Timestamp)
	if err != nil {
		return Event{}, false
	}

	ev := Event{Timestamp: ts.UTC(), Directory: row.CWD}
	if row.Message != nil && row.Message.Usage != nil {
		u := *row.Message.Usage
		ev.Usage = &u
	}
	return ev, true
}

// AssembleSession reduces one file's ordered events to a Session. Returns
// nil for empty input. File order is the authoritative temporal order.
//
// ActiveDuration counts only inter-event gaps strictly below idleThreshold;
// a gap at or above the threshold means the user walked away, and the clock
// pauses for its entire length. A single event therefore yields zero.
func AssembleSession(events []Event, idleThreshold time.Duration) *Session {
	if len(events) == 0 {
		return nil
	}

	s := &Session{
		Start: events[0].Timestamp,
		End:   events[len(events)-1].Timestamp,
	}

	for i, ev := range events {
		if i > 0 {
			gap := ev.Timestamp.Sub(events[i-1].Timestamp)
			if gap < idleThreshold {
				s.ActiveDuration += gap
			}
		}
		if s.Project == "" && ev.Directory != "" {
			s.Project = ev.Directory
		}
		if ev.Usage != nil {
			s.InputTokens += ev.Usage.InputTokens
			s.OutputTokens += ev.Usage.OutputTokens
			s.CacheCreationInputTokens += ev.Usage.CacheCreationInputTokens
			s.CacheReadInputTokens += ev.Usage.CacheReadInputTokens
		}
	}
	return s
}

// ActiveOn reports whether the session touches the given local calendar date.
func (s *Session) ActiveOn(date time.Time, loc *time.Location) bool {
	y, m, d := date.Date()
	sy, sm, sd := s.Start.In(loc).Date()
	ey, em, ed := s.End.In(loc).Date()
	return (sy == y && sm == m && sd == d) || (ey == y && em == m && ed == d)
}
