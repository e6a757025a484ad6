package model

// DefaultPageSize is the number of tasks shown per page.
const DefaultPageSize = 5

// Page is one fetched slice of the remote collection. Total is reported by the
// remote service and is not derivable from Tasks.
type Page struct {
	Tasks []Task
	Total int
}

// PageCount never returns less than 1 so an empty collection still has a page to show.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if last := PageCount(total, pageSize); page > last {
		return last
	}
	return page
}
