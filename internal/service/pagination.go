package service

// PageInfo carries everything a client needs to render pagination
// controls.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// paginate clamps a 1-based requested page to the nearest valid page:
// below 1 becomes 1, beyond the last page becomes the last page. An empty
// result set still reports page 1 of 0 items.
func paginate(total int64, page, pageSize int) PageInfo {
	if pageSize < 1 {
		pageSize = 10
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && totalPages > 0,
	}
}

func (p PageInfo) offset() int { return (p.Page - 1) * p.PageSize }
