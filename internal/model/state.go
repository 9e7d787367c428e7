package model

// NameList is the ordered, duplicate-free list of saved recipe names.
// Methods never modify the receiver; mutations return a new list.
type NameList []string

// Contains reports whether name is in the list (exact match).
func (l NameList) Contains(name string) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends name if it is not already present.
// Returns the resulting list and whether it changed.
func (l NameList) Add(name string) (NameList, bool) {
	if l.Contains(name) {
		return l.Clone(), false
	}
	out := make(NameList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, name), true
}

// Remove filters out every exact match of name, preserving the order of
// the remaining entries. Returns the resulting list and whether it changed.
func (l NameList) Remove(name string) (NameList, bool) {
	out := make(NameList, 0, len(l))
	for _, n := range l {
		if n != name {
			out = append(out, n)
		}
	}
	return out, len(out) != len(l)
}

// Clone returns a copy of the list. The copy of an empty list is non-nil.
func (l NameList) Clone() NameList {
	out := make(NameList, len(l))
	copy(out, l)
	return out
}

// Current holds the recipe presently displayed, if any.
// The zero value is empty: no recipe loaded yet.
type Current struct {
	recipe *Recipe
}

// Get returns the current recipe and true, or nil and false when no
// recipe has been loaded yet.
func (c *Current) Get() (*Recipe, bool) {
	if c.recipe == nil {
		return nil, false
	}
	return c.recipe, true
}

// Loaded reports whether a recipe is held.
func (c *Current) Loaded() bool {
	return c.recipe != nil
}

// Replace swaps in r wholesale. A nil r is ignored: once populated, the
// current recipe can be replaced but never cleared.
func (c *Current) Replace(r *Recipe) {
	if r == nil {
		return
	}
	c.recipe = r
}
