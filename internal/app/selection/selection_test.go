package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle_SelectAndDeselect(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())

	selected := s.Toggle(1, "M", 1100)
	assert.True(t, selected)
	assert.True(t, s.Has(1, "M"))

	pick, ok := s.Get(1, "M")
	assert.True(t, ok)
	assert.Equal(t, 1, pick.Quantity)
	assert.Equal(t, 1100.0, pick.UnitPrice)

	// Toggling the same pair again deselects it
	selected = s.Toggle(1, "M", 1100)
	assert.False(t, selected)
	assert.False(t, s.Has(1, "M"))
	assert.True(t, s.IsEmpty())
}

func TestToggle_PairIsIdentity(t *testing.T) {
	s := New()
	s.Toggle(1, "S", 900)
	s.SetQuantity(1, "S", 4, 10)

	// A toggle-on/toggle-off pair on another size leaves prior state intact
	s.Toggle(2, "L", 1200)
	s.Toggle(2, "L", 1200)

	assert.Len(t, s, 1)
	pick, ok := s.Get(1, "S")
	assert.True(t, ok)
	assert.Equal(t, 4, pick.Quantity)
	assert.False(t, s.Has(2, "L"))
}

func TestToggle_LastSizeRemovesColor(t *testing.T) {
	s := New()
	s.Toggle(7, "S", 500)
	s.Toggle(7, "M", 500)

	s.Toggle(7, "S", 500)
	assert.True(t, s.Has(7, "M"))

	// Removing the last size must drop the color entry entirely
	s.Toggle(7, "M", 500)
	_, colorPresent := s[7]
	assert.False(t, colorPresent, "no dangling empty color entry")
	assert.True(t, s.IsEmpty())
}

func TestSetQuantity_Clamps(t *testing.T) {
	s := New()
	s.Toggle(1, "M", 1000)

	s.SetQuantity(1, "M", 0, 10)
	pick, _ := s.Get(1, "M")
	assert.Equal(t, 1, pick.Quantity)

	s.SetQuantity(1, "M", -5, 10)
	pick, _ = s.Get(1, "M")
	assert.Equal(t, 1, pick.Quantity)

	s.SetQuantity(1, "M", 11, 10)
	pick, _ = s.Get(1, "M")
	assert.Equal(t, 10, pick.Quantity)

	s.SetQuantity(1, "M", 7, 10)
	pick, _ = s.Get(1, "M")
	assert.Equal(t, 7, pick.Quantity)
}

func TestSetQuantity_UnknownPairIgnored(t *testing.T) {
	s := New()
	s.SetQuantity(1, "M", 5, 10)
	assert.True(t, s.IsEmpty())

	s.Toggle(1, "M", 1000)
	s.SetQuantity(1, "XL", 5, 10)
	assert.False(t, s.Has(1, "XL"))
}

func TestRemoveColor(t *testing.T) {
	s := New()
	s.Toggle(1, "S", 900)
	s.Toggle(1, "M", 900)
	s.Toggle(2, "L", 1100)

	s.RemoveColor(1)
	assert.False(t, s.Has(1, "S"))
	assert.False(t, s.Has(1, "M"))
	assert.True(t, s.Has(2, "L"))
}

func TestReset(t *testing.T) {
	s := New()
	s.Toggle(1, "S", 900)
	s.Reset()
	assert.True(t, s.IsEmpty())

	// Still usable after reset
	s.Toggle(2, "M", 1000)
	assert.True(t, s.Has(2, "M"))
}

func TestTotalQuantity(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.TotalQuantity())

	s.Toggle(1, "S", 900)
	s.Toggle(1, "M", 900)
	s.SetQuantity(1, "M", 3, 10)
	s.Toggle(2, "L", 1100)

	assert.Equal(t, 5, s.TotalQuantity())
}

func TestSortedIteration(t *testing.T) {
	s := New()
	s.Toggle(9, "M", 1)
	s.Toggle(3, "S", 1)
	s.Toggle(5, "XL", 1)
	s.Toggle(5, "L", 1)

	assert.Equal(t, []uint{3, 5, 9}, s.SortedColorIDs())
	assert.Equal(t, []string{"L", "XL"}, s.SortedSizes(5))
}

func TestValidate(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Validate(), ErrEmptySelection)

	s.Toggle(1, "M", 100)
	assert.NoError(t, s.Validate())
}
