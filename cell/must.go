package cell

// Must panics if err is non-nil, otherwise returns c. Reserved for tests
// and Example functions — library code never panics on a malformed value.
func Must(c *Cell, err error) *Cell {
	if err != nil {
		panic(err)
	}
	return c
}

// MustBuilder runs fn against a fresh Builder and panics on error,
// returning the resulting Cell. Reserved for tests and Example functions.
func MustBuilder(fn func(*Builder) error) *Cell {
	b := NewBuilder()
	if err := fn(b); err != nil {
		panic(err)
	}
	return b.IntoCell()
}
