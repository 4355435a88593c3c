package dto

// Response represents a JSON error response
type Response struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponseWithRequestID creates an error response carrying the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// ListLabelsQuery holds the listing page's query parameters. Both are free
// text: the search is sanitized and paged is read like absint.
type ListLabelsQuery struct {
	Search string `form:"product_search"`
	Paged  string `form:"paged"`
}

// GenerateLabelQuery holds the label endpoint's query parameters. Action is
// only sent by links in the admin-post.php form.
type GenerateLabelQuery struct {
	ProductID string `form:"product_id"`
	Action    string `form:"action" binding:"omitempty,eq=generate_pdf_label"`
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database"`
}
