// Package selection models the shopper's working color/size/quantity picks
// for one product, shared by the product detail view and the cart edit modal.
// The state lives server-side per request payload; handlers receive it
// explicitly instead of reading widget-global variables.
package selection

import (
	"errors"
	"sort"
)

var ErrEmptySelection = errors.New("at least one color and size must be selected")

// Pick is one chosen size under a color: the quantity and the unit price
// computed for that variant.
type Pick struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Selections maps color id -> size label -> pick. A color key always has at
// least one size; removing the last size removes the color entry.
type Selections map[uint]map[string]Pick

// New returns an empty selection state.
func New() Selections {
	return make(Selections)
}

// IsEmpty reports whether nothing is selected.
func (s Selections) IsEmpty() bool {
	return len(s) == 0
}

// Has reports whether the (color, size) pair is currently selected.
func (s Selections) Has(colorID uint, size string) bool {
	sizes, ok := s[colorID]
	if !ok {
		return false
	}
	_, ok = sizes[size]
	return ok
}

// Get returns the pick for a (color, size) pair.
func (s Selections) Get(colorID uint, size string) (Pick, bool) {
	sizes, ok := s[colorID]
	if !ok {
		return Pick{}, false
	}
	pick, ok := sizes[size]
	return pick, ok
}

// Toggle flips a (color, size) pair. Selecting an unselected pair inserts it
// with quantity 1 at the given unit price; selecting it again removes it.
// When the last size under a color goes away, the color entry goes with it.
// Returns true when the pair is selected after the call.
func (s Selections) Toggle(colorID uint, size string, unitPrice float64) bool {
	sizes, ok := s[colorID]
	if !ok {
		sizes = make(map[string]Pick)
		s[colorID] = sizes
	}

	if _, selected := sizes[size]; selected {
		delete(sizes, size)
		if len(sizes) == 0 {
			delete(s, colorID)
		}
		return false
	}

	sizes[size] = Pick{Quantity: 1, UnitPrice: unitPrice}
	return true
}

// SetQuantity updates the quantity of an existing pick, clamping out-of-range
// input to [1, max] instead of erroring. Unknown pairs are ignored.
func (s Selections) SetQuantity(colorID uint, size string, quantity, max int) {
	sizes, ok := s[colorID]
	if !ok {
		return
	}
	pick, ok := sizes[size]
	if !ok {
		return
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > max {
		quantity = max
	}
	pick.Quantity = quantity
	sizes[size] = pick
}

// RemoveColor drops a color and all its sizes.
func (s Selections) RemoveColor(colorID uint) {
	delete(s, colorID)
}

// Reset empties the state, as after a successful confirm.
func (s *Selections) Reset() {
	*s = make(Selections)
}

// TotalQuantity sums the quantities over all picks.
func (s Selections) TotalQuantity() int {
	var total int
	for _, sizes := range s {
		for _, pick := range sizes {
			total += pick.Quantity
		}
	}
	return total
}

// SortedColorIDs returns the color ids in ascending order so rendering and
// persistence are deterministic.
func (s Selections) SortedColorIDs() []uint {
	ids := make([]uint, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedSizes returns a color's size labels in lexical order.
func (s Selections) SortedSizes(colorID uint) []string {
	sizes := make([]string, 0, len(s[colorID]))
	for size := range s[colorID] {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	return sizes
}

// Validate rejects an empty selection set; confirming requires at least one
// color and size.
func (s Selections) Validate() error {
	if s.IsEmpty() {
		return ErrEmptySelection
	}
	return nil
}
