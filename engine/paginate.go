package engine

// ============================================================================
// PAGINATOR — fixed-size page slicing of the sorted row keys
// ============================================================================

// PageRequest selects one page of row keys. Number is 1-based.
type PageRequest struct {
	Number int
	Size   int
}

// Page is one slice of the ordered row keys plus pagination totals.
type Page struct {
	Keys       []string
	PageNumber int
	PageSize   int
	TotalRows  int
	TotalPages int
}

// Paginate slices the ordered row keys into the requested page. A page
// number past the last page (or below 1) yields an empty page, never an
// error; a non-positive page size is a configuration error.
func Paginate(keys []string, pageSize, pageNumber int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, &ConfigError{Field: "pageSize", Reason: "page size must be positive"}
	}

	totalPages := (len(keys) + pageSize - 1) / pageSize
	page := Page{
		Keys:       []string{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalRows:  len(keys),
		TotalPages: totalPages,
	}

	if pageNumber < 1 {
		return page, nil
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(keys) {
		return page, nil
	}
	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}
	page.Keys = append(page.Keys, keys[start:end]...)
	return page, nil
}
