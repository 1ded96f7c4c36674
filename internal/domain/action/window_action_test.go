package action

import (
	"testing"

	"github.com/erp/projectlink/internal/domain/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindowAction(t *testing.T) {
	a := NewWindowAction("Purchase Order", "purchase.order", nil)

	assert.Equal(t, TypeWindow, a.Type)
	assert.Equal(t, "tree,form", a.ViewMode)
	assert.NotNil(t, a.Domain)
	assert.Empty(t, a.Domain)
}

func TestStoredAction_Read(t *testing.T) {
	t.Run("evaluates domain and context", func(t *testing.T) {
		s := &StoredAction{
			XMLID:       XMLIDVendorBills,
			Name:        "Bills",
			ResModel:    "account.move",
			ViewMode:    "tree,kanban,form",
			DomainText:  "[('move_type', '=', 'in_invoice')]",
			ContextText: `{"default_move_type": "in_invoice"}`,
		}

		a, err := s.Read()
		require.NoError(t, err)
		assert.Equal(t, "Bills", a.Name)
		assert.Equal(t, "tree,kanban,form", a.ViewMode)
		assert.Equal(t, expression.Domain{expression.Cond("move_type", "=", "in_invoice")}, a.Domain)
		assert.Equal(t, "in_invoice", a.Context["default_move_type"])
	})

	t.Run("defaults view mode and empty texts", func(t *testing.T) {
		a, err := (&StoredAction{XMLID: "x", ResModel: "account.move"}).Read()
		require.NoError(t, err)
		assert.Equal(t, DefaultViewMode, a.ViewMode)
		assert.Empty(t, a.Domain)
		assert.Nil(t, a.Context)
	})

	t.Run("bad domain text fails", func(t *testing.T) {
		_, err := (&StoredAction{XMLID: "x", DomainText: "[(user.id)]"}).Read()
		assert.Error(t, err)
	})

	t.Run("bad context text fails", func(t *testing.T) {
		_, err := (&StoredAction{XMLID: "x", ContextText: "{nope"}).Read()
		assert.Error(t, err)
	})
}
