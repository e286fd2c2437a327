package listing

// PageParams selects a 1-indexed page of a given size.
type PageParams struct {
	Page  int
	Limit int
}

// PageMeta describes the position of a returned page within the whole set.
type PageMeta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is one slice of items plus its metadata.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

const (
	// DefaultPage and DefaultLimit apply when the client omits the params.
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps client-requested page sizes.
	MaxLimit = 100
)

// ValidatePageParams supplies defaults for absent or non-positive values and
// caps limit at MaxLimit. This is the request-boundary validation step,
// distinct from Paginate's own clamping of values it is handed directly.
func ValidatePageParams(page, limit int) PageParams {
	validPage := DefaultPage
	if page > 0 {
		validPage = page
	}
	validLimit := DefaultLimit
	if limit > 0 {
		validLimit = limit
		if validLimit > MaxLimit {
			validLimit = MaxLimit
		}
	}
	return PageParams{Page: validPage, Limit: validLimit}
}

// Paginate slices items for the requested page. Non-positive page or limit
// values are clamped to 1; a page past the end yields empty data with the
// requested page echoed in the metadata, which is not an error.
func Paginate[T any](items []T, params PageParams) Page[T] {
	currentPage := params.Page
	if currentPage < 1 {
		currentPage = 1
	}
	itemsPerPage := params.Limit
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}

	totalItems := len(items)
	totalPages := (totalItems + itemsPerPage - 1) / itemsPerPage

	start := (currentPage - 1) * itemsPerPage
	end := start + itemsPerPage
	data := []T{}
	if start < totalItems {
		if end > totalItems {
			end = totalItems
		}
		data = append(data, items[start:end]...)
	}

	return Page[T]{
		Data: data,
		Meta: PageMeta{
			CurrentPage:     currentPage,
			TotalPages:      totalPages,
			TotalItems:      totalItems,
			ItemsPerPage:    itemsPerPage,
			HasNextPage:     currentPage < totalPages,
			HasPreviousPage: currentPage > 1,
		},
	}
}
