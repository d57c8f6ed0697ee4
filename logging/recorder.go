package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Recorder is a Logger that keeps every entry in memory. Tests use it to
// assert on what was logged.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Debug(msg string, args ...any) { r.add("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.add("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.add("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.add("error", msg, args) }

func (r *Recorder) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Args: args})
}

// Entries returns a copy of the captured entries.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Level returns the captured entries at level.
func (r *Recorder) Level(level string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// String renders an entry as "level msg k=v ...".
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Level + " " + e.Msg)
	for i := 0; i+1 < len(e.Args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Args[i], e.Args[i+1])
	}
	return b.String()
}
