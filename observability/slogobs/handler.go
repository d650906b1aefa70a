package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Handler is a custom slog.Handler that supports multiple output formats.
type Handler struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	mu     sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Format specifies the output format (compact, pretty, json).
	Format Format
	// Level is the minimum log level to output.
	Level slog.Level
	// Output is where logs are written (defaults to os.Stderr).
	Output io.Writer
	// Colors enables ANSI color codes (only for compact/pretty formats).
	Colors bool
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Format == "" {
		opts.Format = FormatCompact
	}

	// Auto-detect TTY for colors if not explicitly set
	colors := opts.Colors
	if !colors && opts.Format != FormatJSON {
		if f, ok := opts.Output.(*os.File); ok {
			colors = isTerminal(f)
		}
	}

	return &Handler{
		format: opts.Format,
		level:  opts.Level,
		output: opts.Output,
		colors: colors,
		attrs:  []slog.Attr{},
		groups: []string{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.format {
	case FormatPretty:
		return h.handlePretty(r)
	case FormatJSON:
		return h.handleJSON(r)
	default: // FormatCompact
		return h.handleCompact(r)
	}
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := append([]slog.Attr{}, h.attrs...)
	newAttrs = append(newAttrs, attrs...)

	return &Handler{
		format: h.format,
		level:  h.level,
		output: h.output,
		colors: h.colors,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

// WithGroup returns a new Handler with a group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := append([]string{}, h.groups...)
	newGroups = append(newGroups, name)

	return &Handler{
		format: h.format,
		level:  h.level,
		output: h.output,
		colors: h.colors,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

// handleCompact writes a single-line record:
// "2006-01-02 15:04:05 LEVEL Message → {"key":"value"}"
func (h *Handler) handleCompact(r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')

	// Level, right-aligned to 5 chars, colored when enabled.
	level := levelString(r.Level)
	if h.colors {
		buf = append(buf, colorForLevel(r.Level)...)
		buf = append(buf, fmt.Sprintf("%5s", level)...)
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, fmt.Sprintf("%5s", level)...)
	}
	buf = append(buf, ' ')

	buf = append(buf, r.Message...)

	attrs := h.collectAttrs(r)
	if len(attrs) > 0 {
		buf = append(buf, " → "...)
		jsonData, err := json.Marshal(attrs)
		if err != nil {
			buf = append(buf, " [json-error]"...)
		} else {
			buf = append(buf, jsonData...)
		}
	}

	buf = append(buf, '\n')
	_, err := h.output.Write(buf)
	return err
}

// handlePretty writes a multi-line record with one attribute per
// tree-indented line below the message.
func (h *Handler) handlePretty(r slog.Record) error {
	buf := make([]byte, 0, 256)

	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')

	level := levelString(r.Level)
	if h.colors {
		buf = append(buf, colorForLevel(r.Level)...)
		buf = append(buf, level...)
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, level...)
	}
	for i := len(level); i < 6; i++ {
		buf = append(buf, ' ')
	}

	buf = append(buf, r.Message...)
	buf = append(buf, '\n')

	attrs := h.collectAttrs(r)
	if len(attrs) > 0 {
		count := 0
		total := len(attrs)
		for key, value := range attrs {
			count++
			if count == total {
				buf = append(buf, "                   └─ "...)
			} else {
				buf = append(buf, "                   ├─ "...)
			}
			buf = append(buf, key...)
			buf = append(buf, ": "...)
			buf = append(buf, fmt.Sprintf("%v", value)...)
			buf = append(buf, '\n')
		}
	}

	_, err := h.output.Write(buf)
	return err
}

// handleJSON writes the record as a single JSON object with time,
// level, and msg fields plus the attributes merged at the top level.
func (h *Handler) handleJSON(r slog.Record) error {
	data := make(map[string]interface{})

	data["time"] = r.Time.Format("2006-01-02T15:04:05")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	for key, value := range h.collectAttrs(r) {
		data[key] = value
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	jsonData = append(jsonData, '\n')
	_, err = h.output.Write(jsonData)
	return err
}

// collectAttrs gathers the handler's stored attributes and the record's
// attributes into a single map, respecting any group prefixes.
func (h *Handler) collectAttrs(r slog.Record) map[string]interface{} {
	attrs := make(map[string]interface{})

	for _, attr := range h.attrs {
		h.addAttr(attrs, attr)
	}

	r.Attrs(func(attr slog.Attr) bool {
		h.addAttr(attrs, attr)
		return true
	})

	return attrs
}

// addAttr adds an attribute to the map, prefixing the key with any group names.
func (h *Handler) addAttr(attrs map[string]interface{}, attr slog.Attr) {
	key := attr.Key
	for _, group := range h.groups {
		key = group + "." + key
	}
	attrs[key] = attr.Value.Any()
}

// levelString returns a string representation of the given slog.Level,
// mapping TRACE (level < Debug), DEBUG, INFO, WARN, and ERROR appropriately.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// colorForLevel returns the appropriate ANSI color code for the given slog.Level.
func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray // TRACE
	case level < slog.LevelInfo:
		return colorBlue // DEBUG
	case level < slog.LevelWarn:
		return colorGreen // INFO
	case level < slog.LevelError:
		return colorYellow // WARN
	default:
		return colorRed // ERROR
	}
}

// isTerminal checks whether the given file is connected to a terminal device.
// It returns false if the file is nil or if stat fails.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
