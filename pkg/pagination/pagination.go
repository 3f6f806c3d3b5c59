package pagination

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 20
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds offset pagination inputs from controllers or services.
// Page is zero-based.
type Params struct {
	Page int
	Size int
}

// Normalize clamps the page to >= 0 and the size to [1, MaxSize],
// substituting DefaultSize when the size is unset.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return n.Page * n.Size
}

// Page is a single page of results plus the totals a table view needs.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page envelope from a slice and the total row count.
func NewPage[T any](content []T, params Params, total int64) Page[T] {
	n := params.Normalize()
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          n.Page,
		Size:          n.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, n.Size),
	}
}

func totalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
