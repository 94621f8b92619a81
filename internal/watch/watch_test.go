package watch

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestSpinner(t *testing.T) {
	var s Spinner

	first := s.Current()
	s.Tick()
	if s.Current() == first {
		t.Error("Tick did not advance the frame")
	}

	// A full cycle returns to the first frame.
	s.Reset()
	for n := 0; n < len(spinnerFrames); n++ {
		s.Tick()
	}
	if s.Current() != first {
		t.Errorf("after a full cycle Current() = %c, want %c", s.Current(), first)
	}

	s.Tick()
	s.Reset()
	if s.Current() != first {
		t.Errorf("after Reset Current() = %c, want %c", s.Current(), first)
	}
}

func TestNextCronDuration(t *testing.T) {
	// Every-minute schedule: next fire is within the coming minute.
	d := nextCronDuration("* * * * *")
	if d <= 0 || d > time.Minute {
		t.Errorf("nextCronDuration(* * * * *) = %v, want (0, 1m]", d)
	}
}

func TestNextCronDuration_Invalid(t *testing.T) {
	if d := nextCronDuration("not a schedule"); d != 0 {
		t.Errorf("nextCronDuration(invalid) = %v, want 0", d)
	}
}

func TestValidSchedule(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"0 18 * * 1-5", true},
		{"*/5 * * * *", true},
		{"not a schedule", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := validSchedule(tt.expr); got != tt.want {
			t.Errorf("validSchedule(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestRelevantEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{
			name: "write to session file",
			ev:   fsnotify.Event{Name: "/p/-work-app/session-1.jsonl", Op: fsnotify.Write},
			want: true,
		},
		{
			name: "create session file",
			ev:   fsnotify.Event{Name: "/p/-work-app/session-2.jsonl", Op: fsnotify.Create},
			want: true,
		},
		{
			name: "remove session file",
			ev:   fsnotify.Event{Name: "/p/-work-app/session-1.jsonl", Op: fsnotify.Remove},
			want: true,
		},
		{
			name: "chmod only",
			ev:   fsnotify.Event{Name: "/p/-work-app/session-1.jsonl", Op: fsnotify.Chmod},
			want: false,
		},
		{
			name: "unrelated file",
			ev:   fsnotify.Event{Name: "/p/-work-app/notes.txt", Op: fsnotify.Write},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevantEvent(tt.ev); got != tt.want {
				t.Errorf("relevantEvent(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}
