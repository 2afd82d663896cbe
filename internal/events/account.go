package events

import "fmt"

// Account represents a Gerrit user account in an event
type Account struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// NewAccount builds an Account from a document
func NewAccount(doc Document) (*Account, error) {
	a := &Account{}
	if err := a.FromJSON(doc); err != nil {
		return nil, err
	}
	return a, nil
}

// FromJSON populates the account from a document
func (a *Account) FromJSON(doc Document) error {
	var err error
	if a.Name, err = GetString(doc, KeyName); err != nil {
		return err
	}
	if a.Email, err = GetString(doc, KeyEmail); err != nil {
		return err
	}
	if a.Username, err = GetString(doc, KeyUsername); err != nil {
		return err
	}
	return nil
}

// NameAndEmail renders the account as `"Name" <email>`
func (a *Account) NameAndEmail() string {
	if a == nil || (a.Name == "" && a.Email == "") {
		return ""
	}
	return fmt.Sprintf("\"%s\" <%s>", a.Name, a.Email)
}

// Equal compares accounts by name and email
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Name == other.Name && a.Email == other.Email
}

func (a *Account) String() string {
	return a.NameAndEmail()
}
