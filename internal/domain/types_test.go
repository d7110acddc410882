package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIndexName(t *testing.T) {
	valid := []string{"capstone-yt-semantic-search", "a", "idx-01", strings.Repeat("a", 45)}
	for _, name := range valid {
		assert.NoError(t, ValidateIndexName(name), name)
	}

	invalid := []string{"", "Upper", "-leading", "trailing-", "under_score", "sp ace", strings.Repeat("a", 46)}
	for _, name := range invalid {
		err := ValidateIndexName(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestValidateNamespaceName(t *testing.T) {
	valid := []string{"capstone-yt-semantic-search-ns", "Tenant_A", "chat:user:42", "a b"}
	for _, name := range valid {
		assert.NoError(t, ValidateNamespaceName(name), name)
	}

	invalid := []string{"", "   ", "tab\there", "new\nline", "naïve", strings.Repeat("n", 513)}
	for _, name := range invalid {
		err := ValidateNamespaceName(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNamespaceRequestValidate(t *testing.T) {
	assert.NoError(t, NamespaceRequest{Index: DefaultIndex, Namespace: DefaultNamespace}.Validate())
	assert.ErrorIs(t, NamespaceRequest{Index: "BAD", Namespace: "ok"}.Validate(), ErrInvalidName)
	assert.ErrorIs(t, NamespaceRequest{Index: "ok", Namespace: ""}.Validate(), ErrInvalidName)
}

func TestNewNamespaceEvent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		evt, ok := NewNamespaceEvent(NamespaceResult{Index: "docs", Namespace: "ns", Status: StatusCreated})

		assert.True(t, ok)
		assert.Equal(t, EventNamespaceCreated, evt.Type)
		assert.Equal(t, "docs", evt.Index)
		assert.Equal(t, "ns", evt.Namespace)
		assert.True(t, strings.HasPrefix(evt.ID, "evt_"))
		assert.False(t, evt.OccurredAt.IsZero())
	})

	t.Run("deleted", func(t *testing.T) {
		evt, ok := NewNamespaceEvent(NamespaceResult{Status: StatusDeleted})

		assert.True(t, ok)
		assert.Equal(t, EventNamespaceDeleted, evt.Type)
	})

	t.Run("no event without state change", func(t *testing.T) {
		for _, status := range []string{StatusExists, StatusFailed, ""} {
			_, ok := NewNamespaceEvent(NamespaceResult{Status: status})
			assert.False(t, ok, status)
		}
	})
}

func TestNamespaceResultChanged(t *testing.T) {
	assert.True(t, NamespaceResult{Status: StatusCreated}.Changed())
	assert.True(t, NamespaceResult{Status: StatusDeleted}.Changed())
	assert.False(t, NamespaceResult{Status: StatusExists}.Changed())
	assert.False(t, NamespaceResult{Status: StatusFailed}.Changed())
}
