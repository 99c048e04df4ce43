// Package model holds the response envelopes and paging types shared by
// every resource.
package model

// StatusSuccess is the status every successful envelope carries.
const StatusSuccess = "success"

// Response wraps a single resource.
//
//	{ "status": "success", "data": { ... } }
type Response[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

// NewResponse wraps data in a success envelope.
func NewResponse[T any](data T) Response[T] {
	return Response[T]{Status: StatusSuccess, Data: data}
}

// PageMetadata describes the page returned in a PagedResponse.
type PageMetadata struct {
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// PagedResponse wraps one page of a listing.
type PagedResponse[T any] struct {
	Status   string       `json:"status"`
	Data     []T          `json:"data"`
	Metadata PageMetadata `json:"metadata"`
}

// NewPagedResponse wraps page in a success envelope. Data is never null.
func NewPagedResponse[T any](page *Page[T]) PagedResponse[T] {
	data := page.Content
	if data == nil {
		data = []T{}
	}

	return PagedResponse[T]{
		Status: StatusSuccess,
		Data:   data,
		Metadata: PageMetadata{
			PageNumber:    page.Number,
			PageSize:      page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages(),
			Last:          page.IsLast(),
		},
	}
}
