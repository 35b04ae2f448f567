package response

// Page is the body of every paged listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

func NewPage[T any](content []T, number, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalPages:    pages,
		TotalElements: total,
	}
}

// MapPage converts the content of a page while keeping its paging fields.
func MapPage[S, T any](content []S, number, size int, total int64, fn func(S) T) Page[T] {
	out := make([]T, 0, len(content))
	for _, s := range content {
		out = append(out, fn(s))
	}
	return NewPage(out, number, size, total)
}
