package host

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-project-clock/internal/core/dispatcher"
	"github.com/penwyp/go-project-clock/internal/core/model"
	"github.com/penwyp/go-project-clock/internal/util"
)

// Message types written back to the host.
const (
	MessageStatus       = "status"
	MessageNotification = "notification"
)

type wireEvent struct {
	Event   string `json:"event"`
	Project string `json:"project,omitempty"`
}

// Message is one line sent to the host.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseEvent decodes a single protocol line.
func ParseEvent(line []byte, now time.Time) (dispatcher.Event, error) {
	var wire wireEvent
	if err := sonic.Unmarshal(line, &wire); err != nil {
		return dispatcher.Event{}, fmt.Errorf("invalid event line: %w", err)
	}

	kind := dispatcher.EventKind(strings.ToLower(strings.TrimSpace(wire.Event)))
	if !kind.Valid() {
		return dispatcher.Event{}, fmt.Errorf("unknown event %q", wire.Event)
	}

	event := dispatcher.Event{Kind: kind, At: now}
	if kind == dispatcher.EventProjectChanged {
		event.Project = model.KeyOrDefault(wire.Project)
	}
	return event, nil
}

// Reader turns JSON lines from the host into events.
type Reader struct {
	source io.Reader
	now    func() time.Time
}

func NewReader(source io.Reader, now func() time.Time) *Reader {
	if now == nil {
		now = time.Now
	}
	return &Reader{source: source, now: now}
}

// MaxLineBytes bounds one host line. Longer lines are skipped.
const MaxLineBytes = 1024 * 1024

// Run forwards events to out until the source ends or ctx is cancelled.
// End of input is reported as a shutdown event, since the host closing the
// pipe means the editor went away.
func (r *Reader) Run(ctx context.Context, out chan<- dispatcher.Event) error {
	reader := bufio.NewReaderSize(r.source, 64*1024)

	var readErr error
	lineNo := 0
	for {
		line, tooLong, err := readLine(reader, MaxLineBytes)
		if len(line) > 0 || tooLong || err == nil {
			lineNo++
		}

		switch {
		case tooLong:
			util.LogWarnf("Skip host line %d: longer than %d bytes", lineNo, MaxLineBytes)
		case len(bytes.TrimSpace(line)) == 0:
		default:
			event, parseErr := ParseEvent(line, r.now())
			if parseErr != nil {
				util.LogWarnf("Skip host line %d: %v", lineNo, parseErr)
				break
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
				util.LogErrorf("Host input failed: %v", readErr)
			}
			break
		}
	}

	select {
	case out <- dispatcher.Event{Kind: dispatcher.EventShutdown, At: r.now()}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return readErr
}

// readLine returns the next line without its terminator. A line over limit
// bytes is drained up to its newline and reported with tooLong set.
func readLine(reader *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := reader.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit+1 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(readErr, bufio.ErrBufferFull) {
			continue
		}
		return bytes.TrimRight(line, "\r\n"), tooLong, readErr
	}
}

// Emitter writes messages to the host, one JSON object per line.
type Emitter struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewEmitter(writer io.Writer) *Emitter {
	return &Emitter{writer: writer}
}

func (e *Emitter) emit(msg Message) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	_, err = fmt.Fprintln(e.writer, string(data))
	return err
}

// Status sends the display text for the status bar.
func (e *Emitter) Status(text string) error {
	return e.emit(Message{Type: MessageStatus, Text: text})
}

// Notify sends a transient notification.
func (e *Emitter) Notify(text string) error {
	return e.emit(Message{Type: MessageNotification, Text: text})
}
