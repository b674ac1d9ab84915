// Package payment holds the mutable payment-detail catalog shown to
// customers. Values are seeded from configuration at startup and can be
// changed at runtime from the admin console.
package payment

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Field names accepted by UpdateField.
const (
	FieldIBAN           = "iban"
	FieldAccountName    = "account_name"
	FieldContact        = "contact"
	FieldCryptoContact  = "crypto_contact"
	FieldMethodsContact = "methods_contact"
)

// Details is a snapshot of every payment detail rendered into templates.
type Details struct {
	IBAN           string
	AccountName    string
	Contact        string
	CryptoContact  string
	MethodsContact string
}

// Store guards payment details for concurrent reads from handlers and
// writes from the admin update flow.
type Store struct {
	mu      sync.RWMutex
	details Details
}

// NewStore validates the seed details and returns a ready store.
func NewStore(seed Details) (*Store, error) {
	if strings.TrimSpace(seed.IBAN) == "" {
		return nil, fmt.Errorf("payment: empty iban")
	}
	if strings.TrimSpace(seed.AccountName) == "" {
		return nil, fmt.Errorf("payment: empty account_name")
	}
	return &Store{details: seed}, nil
}

// Snapshot returns a copy of the current details.
func (s *Store) Snapshot() Details {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.details
}

// UpdateField sets a single detail by field name. The new value must be
// non-empty after trimming; unknown field names are rejected.
func (s *Store) UpdateField(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("payment: empty value for field %q", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldIBAN:
		s.details.IBAN = value
	case FieldAccountName:
		s.details.AccountName = value
	case FieldContact:
		s.details.Contact = value
	case FieldCryptoContact:
		s.details.CryptoContact = value
	case FieldMethodsContact:
		s.details.MethodsContact = value
	default:
		return fmt.Errorf("payment: unknown field %q", field)
	}
	return nil
}

// Fields lists the editable field names in stable order.
func Fields() []string {
	fields := []string{
		FieldIBAN,
		FieldAccountName,
		FieldContact,
		FieldCryptoContact,
		FieldMethodsContact,
	}
	sort.Strings(fields)
	return fields
}

// FieldLabel returns a human-readable label for an editable field.
func FieldLabel(field string) string {
	switch field {
	case FieldIBAN:
		return "IBAN"
	case FieldAccountName:
		return "Account name"
	case FieldContact:
		return "Support contact"
	case FieldCryptoContact:
		return "Crypto contact"
	case FieldMethodsContact:
		return "Guides contact"
	default:
		return field
	}
}
