// Package action describes navigation requests handed back to the UI:
// open a list/form view over a model, pre-filtered by a domain.
package action

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erp/projectlink/internal/domain/expression"
	"github.com/erp/projectlink/internal/domain/shared"
)

// TypeWindow is the action type for "open a window over a model"
const TypeWindow = "ir.actions.act_window"

// DefaultViewMode opens the list first, then the form
const DefaultViewMode = "tree,form"

// Stored action identifiers seeded by migrations
const (
	XMLIDVendorBills      = "account.action_move_in_invoice_type"
	XMLIDCustomerInvoices = "account.action_move_out_invoice_type"
)

// WindowAction is the descriptor returned to the presentation layer
type WindowAction struct {
	XMLID    string            `json:"xml_id,omitempty"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ResModel string            `json:"res_model"`
	ViewMode string            `json:"view_mode"`
	Domain   expression.Domain `json:"domain"`
	Context  map[string]any    `json:"context,omitempty"`
	Help     string            `json:"help,omitempty"`
}

// NewWindowAction builds a list/form action over resModel filtered by domain
func NewWindowAction(name, resModel string, domain expression.Domain) *WindowAction {
	if domain == nil {
		domain = expression.Domain{}
	}
	return &WindowAction{
		Name:     name,
		Type:     TypeWindow,
		ResModel: resModel,
		ViewMode: DefaultViewMode,
		Domain:   domain,
	}
}

// StoredAction is a window action persisted as data, with its default
// domain and context kept as text.
type StoredAction struct {
	shared.BaseEntity
	XMLID       string
	Name        string
	ResModel    string
	ViewMode    string
	DomainText  string
	ContextText string
	Help        string
}

// Read evaluates the stored texts and returns the descriptor
func (s *StoredAction) Read() (*WindowAction, error) {
	domain, err := expression.Parse(s.DomainText)
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", s.XMLID, err)
	}

	var ctx map[string]any
	if text := strings.TrimSpace(s.ContextText); text != "" && text != "{}" {
		if err := json.Unmarshal([]byte(text), &ctx); err != nil {
			return nil, fmt.Errorf("action %s: invalid context: %w", s.XMLID, err)
		}
	}

	viewMode := s.ViewMode
	if viewMode == "" {
		viewMode = DefaultViewMode
	}

	return &WindowAction{
		XMLID:    s.XMLID,
		Name:     s.Name,
		Type:     TypeWindow,
		ResModel: s.ResModel,
		ViewMode: viewMode,
		Domain:   domain,
		Context:  ctx,
		Help:     s.Help,
	}, nil
}

// Repository defines the interface for stored action lookup
type Repository interface {
	// FindByXMLID returns shared.ErrNotFound when no action carries the identifier
	FindByXMLID(ctx context.Context, xmlID string) (*StoredAction, error)
}
