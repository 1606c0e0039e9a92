package model

// Slice is one page of a paginated result set. Pages is ceil(Total/length)
// for the length the slice was requested with. A degenerate request (negative
// page index, page length below one) yields Page=0, Pages=0, Entries=nil,
// which is the documented contract rather than an error.
type Slice[T any] struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Entries []T `json:"entries"`
}

// EmptySlice is the degenerate envelope returned for invalid paging input.
func EmptySlice[T any]() *Slice[T] {
	return &Slice[T]{Page: 0, Pages: 0, Total: 0, Entries: nil}
}
