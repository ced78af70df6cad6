package report

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLog appends one JSON object per event to the render run log.
type RunLog struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *json.Encoder
	now    func() time.Time
}

type RunEvent struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Event     string                 `json:"event"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// OpenRunLog opens path for appending, creating parent directories.
func OpenRunLog(path string) (*RunLog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := NewRunLog(f)
	l.closer = f
	return l, nil
}

func NewRunLog(w io.Writer) *RunLog {
	return &RunLog{enc: json.NewEncoder(w), now: time.Now}
}

func (l *RunLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *RunLog) Info(event string, fields map[string]interface{}) {
	l.log("INFO", event, fields)
}

func (l *RunLog) Warn(event string, fields map[string]interface{}) {
	l.log("WARN", event, fields)
}

func (l *RunLog) log(level, event string, fields map[string]interface{}) {
	if l == nil || l.enc == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(RunEvent{
		Timestamp: l.now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Event:     event,
		Fields:    fields,
	})
}
