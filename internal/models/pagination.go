package models

// Page is one slice of an ordered result set plus the counters a client
// needs to navigate the rest.
type Page[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
	Data       []T   `json:"data"`
}

// NewPage fills in the derived counters. An empty result still reports
// one page.
func NewPage[T any](page, pageSize int, total int64, data []T) *Page[T] {
	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if data == nil {
		data = []T{}
	}
	return &Page[T]{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		Data:       data,
	}
}
