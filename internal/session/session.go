// Package session owns the single in-memory document of an editing
// session.
package session

import (
	"sync"

	"github.com/rezonia/invoice-studio/internal/derive"
	"github.com/rezonia/invoice-studio/internal/model"
)

// Session serializes all mutations of one document. Every edit replaces
// the document with a new value produced by the pure model operations, so
// readers always observe a consistent snapshot. There is exactly one
// logical session per process; an export running while the user keeps
// editing sees only the snapshot it captured.
type Session struct {
	mu  sync.Mutex
	doc model.Document
}

// New creates a session bound to doc.
func New(doc model.Document) *Session {
	return &Session{doc: doc}
}

// Document returns the current snapshot.
func (s *Session) Document() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Totals derives the current totals under the document's own policy.
func (s *Session) Totals() derive.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return derive.Derive(s.doc, s.doc.TaxPolicy)
}

// SetField replaces one top-level scalar field.
func (s *Session) SetField(field model.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := model.SetField(s.doc, field, value)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// SetIssuerField replaces one issuer field.
func (s *Session) SetIssuerField(field model.PartyField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := model.SetIssuerField(s.doc, field, value)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// SetClientField replaces one bill-to field.
func (s *Session) SetClientField(field model.PartyField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := model.SetClientField(s.doc, field, value)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// AddItem appends a fresh line item and returns it.
func (s *Session) AddItem() model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = model.AddItem(s.doc)
	return s.doc.Items[len(s.doc.Items)-1]
}

// ReplaceItem replaces the item at index.
func (s *Session) ReplaceItem(index int, item model.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := model.ReplaceItem(s.doc, index, item)
	if err != nil {
		return err
	}
	s.doc = doc
	return nil
}

// RemoveItem removes the item at index; out-of-range is a no-op.
func (s *Session) RemoveItem(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = model.RemoveItem(s.doc, index)
}
