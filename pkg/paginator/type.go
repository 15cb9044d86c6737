package paginator

// PaginateQuery contains pagination parameters for a request.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`           // Page number (1-indexed)
	Limit int64 `json:"page_size" form:"page_size"` // Number of items per page
}

// Paginator describes one page of a result.
type Paginator struct {
	Total       int64 `json:"total"`        // Total number of items across all pages
	Count       int64 `json:"count"`        // Number of items in current page
	PerPage     int64 `json:"per_page"`     // Number of items per page
	CurrentPage int   `json:"current_page"` // Current page number
}

// PaginatorResponse is the wire form of Paginator.
type PaginatorResponse struct {
	Total       int64 `json:"total"`        // Total number of items across all pages
	Count       int64 `json:"count"`        // Number of items in current page
	PerPage     int64 `json:"per_page"`     // Number of items per page
	CurrentPage int   `json:"current_page"` // Current page number
	TotalPages  int   `json:"total_pages"`  // Total number of pages
	HasNext     bool  `json:"has_next"`     // Whether there is a next page
	HasPrev     bool  `json:"has_prev"`     // Whether there is a previous page
}
