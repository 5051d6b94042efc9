package boc

// SerializeOptions controls the optional framing Serialize adds around
// the mandatory cell data: a per-cell byte-offset index written just
// before the cell data and/or a trailing CRC-32-C checksum over everything
// written so far.
type SerializeOptions struct {
	WithIndex  bool
	WithCRC32C bool
}

// DefaultOptions returns the minimal framing: no index, no checksum.
func DefaultOptions() SerializeOptions {
	return SerializeOptions{}
}

// WithIndexEnabled returns a copy of o with WithIndex set.
func (o SerializeOptions) WithIndexEnabled() SerializeOptions {
	o.WithIndex = true
	return o
}

// WithCRC32CEnabled returns a copy of o with WithCRC32C set.
func (o SerializeOptions) WithCRC32CEnabled() SerializeOptions {
	o.WithCRC32C = true
	return o
}
