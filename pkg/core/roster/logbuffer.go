package roster

import "fmt"

// MaxLogLines bounds the diagnostic log attached to a Result
const MaxLogLines = 1000

// logBuffer collects diagnostic lines for one attempt or controller run
type logBuffer struct {
	lines   []string
	dropped int
}

func newLogBuffer() *logBuffer {
	return &logBuffer{lines: make([]string, 0, 64)}
}

func (l *logBuffer) addf(format string, args ...any) {
	if len(l.lines) >= MaxLogLines {
		l.dropped++
		return
	}
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logBuffer) addAll(lines []string) {
	for _, line := range lines {
		l.addf("%s", line)
	}
}

// Lines returns a copy of the buffer. When lines were dropped the final line reports how many.
func (l *logBuffer) Lines() []string {
	if l.dropped == 0 {
		return append([]string(nil), l.lines...)
	}
	out := append([]string(nil), l.lines[:MaxLogLines-1]...)
	return append(out, fmt.Sprintf("... %d log lines dropped", l.dropped+1))
}
