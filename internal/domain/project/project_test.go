package project

import (
	"errors"
	"testing"

	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	t.Run("defaults visibility to employees", func(t *testing.T) {
		p, err := NewProject("  Pigs ", "")
		require.NoError(t, err)
		assert.Equal(t, "Pigs", p.Name)
		assert.Equal(t, VisibilityEmployees, p.PrivacyVisibility)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProject(" ", VisibilityPortal)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects unknown visibility", func(t *testing.T) {
		_, err := NewProject("Pigs", Visibility("public"))
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestProject_AccountKey(t *testing.T) {
	p, err := NewProject("Pigs", VisibilityEmployees)
	require.NoError(t, err)

	_, ok := p.AccountKey()
	assert.False(t, ok)

	accountID := uuid.New()
	p.AttachAnalyticAccount(accountID)
	key, ok := p.AccountKey()
	assert.True(t, ok)
	assert.Equal(t, accountID.String(), key)
}

func TestAccountKeys(t *testing.T) {
	shared1 := uuid.New()
	a := Project{AnalyticAccountID: &shared1}
	b := Project{AnalyticAccountID: &shared1}
	c := Project{}

	assert.Equal(t, []string{shared1.String()}, AccountKeys([]Project{a, b, c}))
	assert.Empty(t, AccountKeys(nil))
}

func TestEnsureOne(t *testing.T) {
	p := Project{Name: "Pigs"}

	got, err := EnsureOne([]Project{p})
	require.NoError(t, err)
	assert.Equal(t, "Pigs", got.Name)

	_, err = EnsureOne(nil)
	assert.True(t, errors.Is(err, shared.ErrExpectedSingleton))

	_, err = EnsureOne([]Project{p, p})
	assert.True(t, errors.Is(err, shared.ErrExpectedSingleton))
	assert.Contains(t, err.Error(), "got 2")
}
