// Package eventlog keeps the most recent diagnostic events in memory so an
// observer (the TUI's log view) can render them. It plugs into zap as a
// zapcore.Core; producers only ever log through *zap.Logger.
package eventlog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const defaultCapacity = 500

// Entry is one recorded event.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  map[string]any
}

// String renders the entry as a single log line with sorted fields.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Time.Format("15:04:05"))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s", e.Level.CapitalString())
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}

// Buffer is a bounded ring of entries. The zero value is not usable; call New.
type Buffer struct {
	mu    sync.Mutex
	ring  []Entry
	idx   int
	count int
}

// New creates a Buffer holding at most capacity entries.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Buffer{ring: make([]Entry, capacity)}
}

// Entries returns a copy of the buffered entries, oldest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := len(b.ring)
	out := make([]Entry, b.count)
	if b.count == size {
		for i := 0; i < b.count; i++ {
			out[i] = b.ring[(b.idx+i)%size]
		}
	} else {
		copy(out, b.ring[:b.count])
	}
	return out
}

// Len returns the number of buffered entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Clear drops all buffered entries.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.ring)
	b.idx = 0
	b.count = 0
}

func (b *Buffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.idx] = e
	b.idx = (b.idx + 1) % len(b.ring)
	if b.count < len(b.ring) {
		b.count++
	}
}

// Core returns a zapcore.Core that records entries at or above level.
func (b *Buffer) Core(level zapcore.LevelEnabler) zapcore.Core {
	return &core{LevelEnabler: level, buf: b}
}

type core struct {
	zapcore.LevelEnabler
	buf    *Buffer
	fields []zapcore.Field
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &core{LevelEnabler: c.LevelEnabler, buf: c.buf, fields: merged}
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	c.buf.add(Entry{
		Time:    ent.Time,
		Level:   ent.Level,
		Message: ent.Message,
		Fields:  enc.Fields,
	})
	return nil
}

func (c *core) Sync() error { return nil }
