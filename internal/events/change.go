package events

import "fmt"

// Change represents change information in an event
type Change struct {
	Project string   `json:"project"`
	Branch  string   `json:"branch"`
	ID      string   `json:"id"`
	Number  string   `json:"number"`
	Subject string   `json:"subject"`
	URL     string   `json:"url,omitempty"`
	Owner   *Account `json:"owner,omitempty"`
}

// NewChange builds a Change from a document
func NewChange(doc Document) (*Change, error) {
	c := &Change{}
	if err := c.FromJSON(doc); err != nil {
		return nil, err
	}
	return c, nil
}

// FromJSON populates the change from a document
func (c *Change) FromJSON(doc Document) error {
	fields := []struct {
		key string
		dst *string
	}{
		{KeyProject, &c.Project},
		{KeyBranch, &c.Branch},
		{KeyID, &c.ID},
		{KeyNumber, &c.Number},
		{KeySubject, &c.Subject},
		{KeyURL, &c.URL},
	}
	for _, f := range fields {
		v, err := GetString(doc, f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if ContainsKey(doc, KeyOwner) {
		obj, err := GetObject(doc, KeyOwner)
		if err != nil {
			return err
		}
		owner, err := NewAccount(obj)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyOwner, err)
		}
		c.Owner = owner
	}

	return nil
}

func (c *Change) String() string {
	return fmt.Sprintf("Change-Id for #%s: %s", c.Number, c.ID)
}
