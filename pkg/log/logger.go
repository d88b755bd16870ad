package log

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Logger delivers structured entries asynchronously to its transporters.
// Entries are queued on a bounded channel; when the queue is full the entry
// is dropped rather than blocking the caller.
type Logger struct {
	level        Level
	transporters []Transporter
	queue        chan Entry
	done         chan struct{}
	baseFields   map[string]any
	mu           sync.RWMutex
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// queueCapacity bounds the number of in-flight entries per logger.
const queueCapacity = 1000

// New creates a new logger with the given minimum level and transporters.
func New(level Level, transporters ...Transporter) *Logger {
	l := &Logger{
		level:        level,
		transporters: transporters,
		queue:        make(chan Entry, queueCapacity),
		done:         make(chan struct{}),
		baseFields:   make(map[string]any),
	}

	l.wg.Add(1)
	go l.worker()

	return l
}

// SetLevel changes the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// With creates a child logger with additional base fields. The child shares
// the parent's queue and transporters.
func (l *Logger) With(keysAndValues ...any) *Logger {
	l.mu.RLock()
	fields := make(map[string]any, len(l.baseFields)+len(keysAndValues)/2)
	for k, v := range l.baseFields {
		fields[k] = v
	}
	level := l.level
	l.mu.RUnlock()

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}

	return &Logger{
		level:        level,
		transporters: l.transporters,
		queue:        l.queue,
		done:         l.done,
		baseFields:   fields,
	}
}

// Close stops the worker, flushes queued entries, and closes transporters.
// Only meaningful on the root logger.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.wg.Wait()

		for {
			select {
			case entry := <-l.queue:
				l.deliver(entry)
			default:
				for _, t := range l.transporters {
					_ = t.Close()
				}
				return
			}
		}
	})
}

func (l *Logger) worker() {
	defer l.wg.Done()
	for {
		select {
		case entry := <-l.queue:
			l.deliver(entry)
		case <-l.done:
			return
		}
	}
}

// deliver sends an entry to all transporters, falling back to stderr on
// transport failure.
func (l *Logger) deliver(entry Entry) {
	for _, t := range l.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(os.Stderr, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}

func (l *Logger) log(level Level, requestID, msg string, keysAndValues ...any) {
	l.mu.RLock()
	minLevel := l.level
	l.mu.RUnlock()

	if !minLevel.Enables(level) {
		return
	}

	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		RequestID: requestID,
		Message:   msg,
		Fields:    make(map[string]any, len(l.baseFields)+len(keysAndValues)/2),
	}

	l.mu.RLock()
	for k, v := range l.baseFields {
		entry.Fields[k] = v
	}
	l.mu.RUnlock()

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			entry.Fields[key] = keysAndValues[i+1]
		}
	}

	select {
	case l.queue <- entry:
	default:
		// Queue full; drop rather than block the caller.
	}
}
