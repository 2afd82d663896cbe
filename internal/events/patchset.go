package events

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PatchSet refers to a specific patchset within a change.
//
// Two patchsets are the same when Number and Revision match; the remaining
// fields are informational.
type PatchSet struct {
	// Number is the patchset number, kept textual as Gerrit emits it.
	Number string `json:"number"`
	// Revision is the git commit-ish of this patchset.
	Revision string `json:"revision"`
	// Ref is the refspec. Older Gerrit versions omit it from stream-events.
	Ref string `json:"ref,omitempty"`
	// Draft is set for draft patchsets.
	Draft bool `json:"isDraft"`
	// Uploader is nil unless the event carried an uploader.
	Uploader *Account `json:"uploader,omitempty"`
}

// NewPatchSet builds a PatchSet from a document
func NewPatchSet(doc Document) (*PatchSet, error) {
	p := &PatchSet{}
	if err := p.FromJSON(doc); err != nil {
		return nil, err
	}
	return p, nil
}

// FromJSON populates the patchset from a document. Missing keys leave the
// zero value in place; the uploader is only built when its key is present.
func (p *PatchSet) FromJSON(doc Document) error {
	var err error
	if p.Number, err = GetString(doc, KeyNumber); err != nil {
		return err
	}
	if p.Revision, err = GetString(doc, KeyRevision); err != nil {
		return err
	}
	if p.Draft, err = GetBoolean(doc, KeyIsDraft); err != nil {
		return err
	}
	if p.Ref, err = GetString(doc, KeyRef); err != nil {
		return err
	}

	if ContainsKey(doc, KeyUploader) {
		obj, err := GetObject(doc, KeyUploader)
		if err != nil {
			return err
		}
		uploader, err := NewAccount(obj)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyUploader, err)
		}
		p.Uploader = uploader
	}

	return nil
}

// Equal reports whether both patchsets have the same number and revision
func (p *PatchSet) Equal(other *PatchSet) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Number == other.Number && p.Revision == other.Revision
}

// Hash combines Number and Revision; equal patchsets hash equally.
// A nil patchset hashes to 0.
func (p *PatchSet) Hash() uint64 {
	if p == nil {
		return 0
	}
	h := xxhash.New()
	h.WriteString(p.Number)
	h.Write([]byte{0})
	h.WriteString(p.Revision)
	return h.Sum64()
}

func (p *PatchSet) String() string {
	return "PatchSet: " + p.Number
}
