package carousel

// Width breakpoints
const (
	// NarrowWidth is the widest viewport that shows a single item per page.
	NarrowWidth = 480

	// MediumWidth is the widest viewport that shows two items per page.
	MediumWidth = 1024
)

// Breakpoints maps viewport widths to page sizes.
type Breakpoints struct {
	Narrow int `json:"narrow" yaml:"narrow"`
	Medium int `json:"medium" yaml:"medium"`
}

// DefaultBreakpoints returns the standard 480/1024 breakpoints.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{Narrow: NarrowWidth, Medium: MediumWidth}
}

// PageSize returns the number of items per page for the given width.
func (b Breakpoints) PageSize(width int) int {
	switch {
	case width <= b.Narrow:
		return 1
	case width <= b.Medium:
		return 2
	default:
		return 3
	}
}

// PageSize returns the page size for width using the default breakpoints.
func PageSize(width int) int {
	return DefaultBreakpoints().PageSize(width)
}

// Page is a contiguous slice of the item list shown in one carousel view.
type Page[T any] struct {
	Index int `json:"index"`
	Items []T `json:"items"`
}

// TotalPages returns ceil(n/size). A size below 1 counts as 1.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size < 1 {
		size = 1
	}
	return (n + size - 1) / size
}

// Partition groups items into pages of size items each, preserving order.
// The last page may hold fewer items. An empty list yields no pages.
func Partition[T any](items []T, size int) []Page[T] {
	if size < 1 {
		size = 1
	}

	pages := make([]Page[T], 0, TotalPages(len(items), size))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, Page[T]{
			Index: len(pages),
			// cap the slice so appends on a page never clobber the next one
			Items: items[start:end:end],
		})
	}
	return pages
}

// PartitionForWidth partitions items with the page size for width.
func PartitionForWidth[T any](items []T, width int) []Page[T] {
	return Partition(items, PageSize(width))
}

// Flatten concatenates the pages back into a single list.
func Flatten[T any](pages []Page[T]) []T {
	n := 0
	for _, p := range pages {
		n += len(p.Items)
	}
	out := make([]T, 0, n)
	for _, p := range pages {
		out = append(out, p.Items...)
	}
	return out
}
