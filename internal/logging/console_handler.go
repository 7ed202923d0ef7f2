package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

// consoleHandler writes one header line per record followed by indented
// field lines. Session and dataset move into the header at info and above.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Level
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl slog.Level, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// consoleEntry is a record split into header parts and remaining fields.
type consoleEntry struct {
	component string
	session   string
	dataset   string
	fields    []field
}

type field struct {
	key   string
	value slog.Value
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	var all []field
	for _, attr := range h.attrs {
		appendField(&all, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		appendField(&all, h.groups, attr)
		return true
	})
	entry := splitEntry(lastWins(all), record.Level >= slog.LevelInfo)

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s", ts.In(time.Local).Format(consoleTimeLayout), levelLabel(record.Level))
	if entry.component != "" {
		fmt.Fprintf(&buf, " [%s]", entry.component)
	}
	if subject := headerSubject(entry.session, entry.dataset); subject != "" {
		buf.WriteString(" " + subject)
	}
	buf.WriteString(" – " + message)
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	buf.WriteByte('\n')

	raw := record.Level < slog.LevelInfo
	for _, f := range entry.fields {
		if raw {
			fmt.Fprintf(&buf, "    %s: %s\n", f.key, formatValue(f.value))
			continue
		}
		fmt.Fprintf(&buf, "    - %s: %s\n", displayLabel(f.key), displayValue(f.key, f.value))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// splitEntry lifts the header fields out of fields. When hideContext is set
// the session and dataset appear only in the header.
func splitEntry(fields []field, hideContext bool) consoleEntry {
	var entry consoleEntry
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			entry.component = valueText(f.value)
			continue
		case FieldSessionID:
			entry.session = valueText(f.value)
			if hideContext {
				continue
			}
		case FieldDataset:
			entry.dataset = valueText(f.value)
			if hideContext {
				continue
			}
		}
		entry.fields = append(entry.fields, f)
	}
	return entry
}

// headerSubject renders "Session 1a2b3c4d · day1".
func headerSubject(session, dataset string) string {
	var parts []string
	if session = strings.TrimSpace(session); session != "" {
		if len(session) > 8 {
			session = session[:8]
		}
		parts = append(parts, "Session "+session)
	}
	if dataset = strings.TrimSpace(dataset); dataset != "" {
		parts = append(parts, filepath.Base(dataset))
	}
	return strings.Join(parts, " · ")
}

// lastWins keeps the first position of every key with its last value.
func lastWins(fields []field) []field {
	index := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if f.key == "" {
			continue
		}
		if i, ok := index[f.key]; ok {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func appendField(dst *[]field, groups []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		inner := groups
		if attr.Key != "" {
			inner = append(append([]string(nil), groups...), attr.Key)
		}
		for _, a := range value.Group() {
			appendField(dst, inner, a)
		}
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	*dst = append(*dst, field{key: key, value: value})
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldVisionID:
		return "Vision ID"
	case "error":
		return "Error"
	}
	label := strings.ReplaceAll(strings.TrimSuffix(key, "_bytes"), "_", " ")
	if label == "" {
		return key
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// displayValue renders *_bytes as sizes and booleans as yes/no.
func displayValue(key string, v slog.Value) string {
	switch {
	case strings.HasSuffix(key, "_bytes") && v.Kind() == slog.KindInt64 && v.Int64() >= 0:
		return humanize.Bytes(uint64(v.Int64()))
	case strings.HasSuffix(key, "_bytes") && v.Kind() == slog.KindUint64:
		return humanize.Bytes(v.Uint64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	return formatValue(v)
}

func valueText(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return v.String()
	}
	if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
		return err.Error()
	}
	return formatValue(v)
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().In(time.Local).Format(consoleTimeLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
