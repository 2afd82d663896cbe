package events

import (
	"fmt"
	"strings"
)

// Event represents one Gerrit stream-events JSON line
type Event struct {
	Type           string    `json:"type"`
	Change         *Change   `json:"change,omitempty"`
	PatchSet       *PatchSet `json:"patchSet,omitempty"`
	Uploader       *Account  `json:"uploader,omitempty"`
	EventCreatedOn int64     `json:"eventCreatedOn,omitempty"`
}

// ParseEvent decodes a stream-events line into an Event.
// Nested attributes are only built for keys present in the line.
func ParseEvent(data []byte) (*Event, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return NewEvent(doc)
}

// NewEvent builds an Event from an already decoded document
func NewEvent(doc Document) (*Event, error) {
	eventType, err := GetString(doc, KeyType)
	if err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, fmt.Errorf("event has no %q", KeyType)
	}

	ev := &Event{Type: eventType}

	if ev.EventCreatedOn, err = GetInt64(doc, KeyEventCreatedOn); err != nil {
		return nil, err
	}

	if ContainsKey(doc, KeyChange) {
		obj, err := GetObject(doc, KeyChange)
		if err != nil {
			return nil, err
		}
		if ev.Change, err = NewChange(obj); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyChange, err)
		}
	}

	if ContainsKey(doc, KeyPatchSet) {
		obj, err := GetObject(doc, KeyPatchSet)
		if err != nil {
			return nil, err
		}
		if ev.PatchSet, err = NewPatchSet(obj); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyPatchSet, err)
		}
	}

	if ContainsKey(doc, KeyUploader) {
		obj, err := GetObject(doc, KeyUploader)
		if err != nil {
			return nil, err
		}
		if ev.Uploader, err = NewAccount(obj); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyUploader, err)
		}
	}

	return ev, nil
}

// Project returns the change project, or "" for events without a change
func (e *Event) Project() string {
	if e.Change == nil {
		return ""
	}
	return e.Change.Project
}

// Summary renders the event as a single line of text
func (e *Event) Summary() string {
	var b strings.Builder
	b.WriteString(e.Type)

	if e.Change != nil {
		fmt.Fprintf(&b, " %s#%s", e.Change.Project, e.Change.Number)
		if e.Change.Branch != "" {
			fmt.Fprintf(&b, " [%s]", e.Change.Branch)
		}
	}

	if e.PatchSet != nil {
		fmt.Fprintf(&b, " %s", e.PatchSet)
		if e.PatchSet.Revision != "" {
			fmt.Fprintf(&b, " (%s)", shortRevision(e.PatchSet.Revision))
		}
		if e.PatchSet.Draft {
			b.WriteString(" draft")
		}
	}

	uploader := e.Uploader
	if uploader == nil && e.PatchSet != nil {
		uploader = e.PatchSet.Uploader
	}
	if who := uploader.NameAndEmail(); who != "" {
		fmt.Fprintf(&b, " by %s", who)
	}

	return b.String()
}

func shortRevision(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
