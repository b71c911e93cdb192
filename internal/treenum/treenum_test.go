package treenum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepth(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"", 0},
		{"C", 1},
		{"C01", 2},
		{"C01.123", 3},
		{"C01.123.456", 4},
		{"C23.550.288.500", 5},
		// Outside the root category there is no implicit root level.
		{"D01", 1},
		{"D01.2", 2},
		{"A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Diseases.Depth(tt.id))
		})
	}
}

func TestDepth_CustomRoot(t *testing.T) {
	h := New("A")
	assert.Equal(t, 1, h.Depth("A"))
	assert.Equal(t, 2, h.Depth("A01"))
	assert.Equal(t, 3, h.Depth("A01.111"))
	assert.Equal(t, 2, h.Depth("C01.111"))
}

func TestNew_DefaultsRoot(t *testing.T) {
	assert.Equal(t, DefaultRoot, New("").Root)
}

func TestPathComponents(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"", nil},
		{"C", []string{"C"}},
		{"C01", []string{"C", "C01"}},
		{"C01.123.456", []string{"C", "C01", "C01.123", "C01.123.456"}},
		{"D01.2", []string{"D01", "D01.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Diseases.PathComponents(tt.id))
		})
	}
}

func TestParent(t *testing.T) {
	p, ok := Diseases.Parent("C01")
	require.True(t, ok)
	assert.Equal(t, "C", p)

	p, ok = Diseases.Parent("C01.123.456")
	require.True(t, ok)
	assert.Equal(t, "C01.123", p)

	_, ok = Diseases.Parent("C")
	assert.False(t, ok)

	_, ok = Diseases.Parent("")
	assert.False(t, ok)
}

func TestDepth_DecreasesByOneTowardsParent(t *testing.T) {
	ids := []string{"C01", "C01.123", "C01.123.456", "C23.550.288.500.100"}
	for _, id := range ids {
		parent, ok := Diseases.Parent(id)
		require.True(t, ok, id)
		assert.Equal(t, Diseases.Depth(id)-1, Diseases.Depth(parent), id)
	}
}

func TestAncestors(t *testing.T) {
	assert.Nil(t, Ancestors("C01"))
	assert.Equal(t, []string{"C01", "C01.123"}, Ancestors("C01.123.456"))
}

func TestIsAncestor(t *testing.T) {
	assert.True(t, Diseases.IsAncestor("C", "C01.123"))
	assert.True(t, Diseases.IsAncestor("C01", "C01.123"))
	assert.False(t, Diseases.IsAncestor("C01.123", "C01.123"))
	assert.False(t, Diseases.IsAncestor("C01.12", "C01.123"))
	assert.False(t, Diseases.IsAncestor("C02", "C01.123"))
	assert.False(t, Diseases.IsAncestor("", "C01"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		id      string
		wantErr error
	}{
		{"C", nil},
		{"C01", nil},
		{"C01.123.456", nil},
		{"", ErrEmptyIdentifier},
		{"c01", ErrInvalidIdentifier},
		{"C01.", ErrInvalidIdentifier},
		{"C01..2", ErrInvalidIdentifier},
		{"01.2", ErrInvalidIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.id), tt.wantErr)
		})
	}
}

func TestIsRoot(t *testing.T) {
	assert.True(t, Diseases.IsRoot("C"))
	assert.False(t, Diseases.IsRoot("C01"))
	assert.False(t, Diseases.IsRoot(""))
	assert.True(t, New("A").IsRoot("A"))
}
