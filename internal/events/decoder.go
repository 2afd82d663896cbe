package events

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gerrit-ai-review/gerrit-events/internal/logger"
)

const maxLineSize = 10 * 1024 * 1024

// Stats counts what a Decoder has seen
type Stats struct {
	Lines     int `json:"lines"`
	Events    int `json:"events"`
	Malformed int `json:"malformed"`
}

// Decoder reads newline-delimited stream-events from a reader
type Decoder struct {
	r   io.Reader
	log *logger.Logger
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		log: logger.Get(),
	}
}

// Decode calls fn for every event in the stream.
// Blank lines are skipped and malformed lines are logged and counted.
// Decoding stops at EOF, on the first error from fn, or when ctx is done.
func (d *Decoder) Decode(ctx context.Context, fn func(*Event) error) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(d.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Lines++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		ev, err := ParseEvent(line)
		if err != nil {
			stats.Malformed++
			d.log.Warnf("Failed to parse event on line %d: %v", stats.Lines, err)
			d.log.Debugf("Raw event: %s", line)
			continue
		}

		stats.Events++
		if err := fn(ev); err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}

	return stats, nil
}
