// Package logger is the central log for the emulation. Entries are tagged
// with the name of the component that created them and are kept in a bounded
// list. The most recent entries can be written to any io.Writer with the
// Tail() function.
//
// Repeated entries are not stored twice. Instead, the most recent entry has
// its repeat count increased.
//
// Logging is subject to a Permission. Components that should only log in
// some contexts (for example, during a debugging session but not during a
// test) should require a Permission from their caller.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission implementations decide whether a log entry is to be accepted.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow can be used as a Permission when logging should always happen.
var Allow Permission = allow{}

// the maximum number of entries kept by the central log
const maxEntries = 256

type entry struct {
	tag    string
	detail string
	repeat int
}

func (e entry) String() string {
	if e.repeat > 0 {
		return fmt.Sprintf("%s: %s (repeat x%d)", e.tag, e.detail, e.repeat+1)
	}
	return fmt.Sprintf("%s: %s", e.tag, e.detail)
}

type logger struct {
	crit    sync.Mutex
	entries []entry
	echo    io.Writer
}

var central = &logger{
	entries: make([]entry, 0, maxEntries),
}

func (l *logger) log(tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// multi-line details are stored as separate entries
	for _, d := range strings.Split(strings.TrimSpace(detail), "\n") {
		if n := len(l.entries); n > 0 {
			last := &l.entries[n-1]
			if last.tag == tag && last.detail == d {
				last.repeat++
				continue // for loop
			}
		}

		e := entry{tag: tag, detail: d}
		if len(l.entries) >= maxEntries {
			l.entries = l.entries[1:]
		}
		l.entries = append(l.entries, e)

		if l.echo != nil {
			io.WriteString(l.echo, e.String())
			io.WriteString(l.echo, "\n")
		}
	}
}

// Log adds an entry to the central log. The detail argument can be a string,
// an error, a fmt.Stringer or any other value. Values other than strings,
// errors and Stringers are formatted with the %v verb.
func Log(perm Permission, tag string, detail any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}

	var s string
	switch d := detail.(type) {
	case string:
		s = d
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", d)
	}

	central.log(tag, s)
}

// Logf adds a formatted entry to the central log.
func Logf(perm Permission, tag string, detail string, args ...any) {
	if perm == nil || !perm.AllowLogging() {
		return
	}
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Tail writes the last n entries to output. A negative n writes every entry
// in the log.
func Tail(output io.Writer, n int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if n < 0 || n > len(central.entries) {
		n = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-n:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

// Clear removes all entries from the central log.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// SetEcho sets a writer that receives every new entry as it is logged. A nil
// writer stops the echo.
func SetEcho(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.echo = output
}
