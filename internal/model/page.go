package model

import (
	"fmt"
	"math"
	"strings"
)

// Paging defaults used when a request leaves them out.
const (
	DefaultPage         = 0
	DefaultSortProperty = "id"

	// MaxPage bounds the page number so Offset cannot overflow.
	MaxPage = math.MaxInt32
)

// Direction is a sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// SortOrder sorts by one property of the resource (not a column name).
type SortOrder struct {
	Property  string
	Direction Direction
}

func (o SortOrder) String() string {
	return fmt.Sprintf("%s,%s", o.Property, strings.ToLower(string(o.Direction)))
}

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset is the number of rows to skip. It saturates at math.MaxInt64
// instead of wrapping.
func (p PageRequest) Offset() int64 {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return math.MaxInt64
	}
	return int64(p.Page) * int64(p.Size)
}

// NewPageRequest normalizes raw paging parameters.
//
// A negative page becomes 0 and a page above MaxPage becomes MaxPage. A size
// below 1 becomes defaultSize and a size above maxSize becomes maxSize. Without sort parameters the listing is
// sorted by id ascending.
func NewPageRequest(page, size int, sort []string, defaultSize, maxSize int) PageRequest {
	if page < 0 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}

	orders := ParseSort(sort)
	if len(orders) == 0 {
		orders = []SortOrder{{Property: DefaultSortProperty, Direction: ASC}}
	}

	return PageRequest{Page: page, Size: size, Sort: orders}
}

// ParseSort parses repeated "sort" parameters of the form
// "property[,property...][,asc|desc]". A trailing direction applies to every
// property of the same parameter; the default is ascending.
//
//	sort=title,desc&sort=id      -> title DESC, id ASC
//	sort=status,dueDate,desc     -> status DESC, dueDate DESC
func ParseSort(params []string) []SortOrder {
	var orders []SortOrder

	for _, param := range params {
		var tokens []string
		for _, t := range strings.Split(param, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
		if len(tokens) == 0 {
			continue
		}

		direction := ASC
		if d, ok := parseDirection(tokens[len(tokens)-1]); ok {
			direction = d
			tokens = tokens[:len(tokens)-1]
		}

		for _, property := range tokens {
			orders = append(orders, SortOrder{Property: property, Direction: direction})
		}
	}

	return orders
}

func parseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToUpper(s)) {
	case ASC:
		return ASC, true
	case DESC:
		return DESC, true
	default:
		return "", false
	}
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// NewPage builds a page for req holding content out of total elements.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	return &Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages is the number of pages of Size needed for TotalElements.
func (p *Page[T]) TotalPages() int {
	if p.Size < 1 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// IsLast reports whether no page follows this one.
func (p *Page[T]) IsLast() bool {
	return p.Number >= p.TotalPages()-1
}

// MapPage converts the content of a page, keeping its paging data.
func MapPage[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	content := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}

	return &Page[R]{
		Content:       content,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}
