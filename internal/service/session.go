// internal/service/session.go
package service

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/fermaeda/procurement-backend/internal/domain"
)

// EditCommand is one parsed edit: set a product's quantity within a
// supplier's order. Quantity 0 deletes the entry.
type EditCommand struct {
	Supplier string `json:"supplier"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// ParseEditLine parses the operator syntax "Supplier: Product = quantity".
func ParseEditLine(line string) (EditCommand, error) {
	supplierPart, rest, ok := strings.Cut(line, ":")
	if !ok {
		return EditCommand{}, domain.ErrMalformedEdit
	}
	productPart, qtyPart, ok := strings.Cut(rest, "=")
	if !ok {
		return EditCommand{}, domain.ErrMalformedEdit
	}

	qty, err := strconv.Atoi(strings.TrimSpace(qtyPart))
	if err != nil {
		return EditCommand{}, domain.ErrMalformedEdit
	}

	cmd := EditCommand{
		Supplier: strings.TrimSpace(supplierPart),
		Product:  strings.TrimSpace(productPart),
		Quantity: qty,
	}
	if cmd.Supplier == "" || cmd.Product == "" {
		return EditCommand{}, domain.ErrMalformedEdit
	}
	return cmd, nil
}

// SessionManager holds in-progress recommendation edits, isolated per
// operator. The reconciliation itself is the stateless
// Recommendation.ApplyEdit; the manager only owns the per-operator copy
// and the Idle/Editing lifecycle.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]domain.Recommendation
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]domain.Recommendation)}
}

// Begin starts (or restarts) an edit session over a copy of the given
// recommendation.
func (m *SessionManager) Begin(operator string, rec domain.Recommendation) domain.Recommendation {
	m.mu.Lock()
	defer m.mu.Unlock()

	working := rec.Clone()
	m.sessions[operator] = working
	return working
}

// Apply runs one edit against the operator's working copy. A rejected
// edit leaves the session unchanged.
func (m *SessionManager) Apply(operator string, cmd EditCommand) (domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	working, ok := m.sessions[operator]
	if !ok {
		return nil, fmt.Errorf("%w: operator %s", domain.ErrNoActiveSession, operator)
	}
	if err := working.ApplyEdit(cmd.Supplier, cmd.Product, cmd.Quantity); err != nil {
		return nil, err
	}
	return working.Clone(), nil
}

// Current returns a copy of the operator's working recommendation.
func (m *SessionManager) Current(operator string) (domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	working, ok := m.sessions[operator]
	if !ok {
		return nil, fmt.Errorf("%w: operator %s", domain.ErrNoActiveSession, operator)
	}
	return working.Clone(), nil
}

// Done closes the operator's session and returns the final state.
func (m *SessionManager) Done(operator string) (domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	working, ok := m.sessions[operator]
	if !ok {
		return nil, fmt.Errorf("%w: operator %s", domain.ErrNoActiveSession, operator)
	}
	delete(m.sessions, operator)
	return working, nil
}
