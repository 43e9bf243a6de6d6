package response

// Envelope is the shared request/response shape consumed by the admin
// SPA: {success, data?, error?}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	if data == nil {
		data = struct{}{}
	}
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	if msg == "" {
		msg = "request failed"
	}
	return Envelope{Success: false, Error: msg}
}

// Pagination is the standard list shape: {page, limit, total, pages}.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type PageData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func Paginated(items any, page, limit int, total int64) Envelope {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return OK(PageData{
		Items:      items,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	})
}
