package pagination

const (
	// DefaultSize is the page size used when the caller asks for none.
	DefaultSize = 10

	// MaxSize is the largest page the upstream listing endpoint serves.
	MaxSize = 100
)

// Config holds page size limits.
type Config struct {
	// DefaultSize replaces non-positive sizes.
	DefaultSize int
	// MaxSize caps oversized requests.
	MaxSize int
}

// DefaultConfig returns limits matching the upstream listing endpoint.
func DefaultConfig() Config {
	return Config{
		DefaultSize: DefaultSize,
		MaxSize:     MaxSize,
	}
}

// Request identifies one page.
type Request struct {
	// Index is 0-based.
	Index int
	Size  int
}

// Number returns the 1-based page number sent on the wire.
func (r Request) Number() int {
	return r.Index + 1
}

// Offset returns the position of the first record of the page within the
// whole catalog.
func (r Request) Offset() int {
	return r.Index * r.Size
}

// Normalize clamps a page index to >= 0 and a page size into
// [1, MaxSize], substituting DefaultSize for non-positive sizes.
func (c Config) Normalize(index, size int) Request {
	c = c.withDefaults()
	if index < 0 {
		index = 0
	}
	return Request{
		Index: index,
		Size:  NormalizeSizeMax(size, c.DefaultSize, c.MaxSize),
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultSize <= 0 {
		c.DefaultSize = DefaultSize
	}
	if c.MaxSize <= 0 {
		c.MaxSize = MaxSize
	}
	if c.DefaultSize > c.MaxSize {
		c.DefaultSize = c.MaxSize
	}
	return c
}

// IsNormalizedSizeMax reports the normalized size and whether the input
// was already valid.
func IsNormalizedSizeMax(size, defaultSize, maxSize int) (int, bool) {
	if size <= 0 {
		return defaultSize, false
	} else if size > maxSize {
		return maxSize, false
	}

	return size, true
}

// NormalizeSizeMax is IsNormalizedSizeMax without the validity flag.
func NormalizeSizeMax(size, defaultSize, maxSize int) int {
	ret, _ := IsNormalizedSizeMax(size, defaultSize, maxSize)
	return ret
}

// TotalPages returns the number of pages needed to show total records at
// the given page size. An empty catalog has zero pages.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
