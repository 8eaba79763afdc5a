// FILE: internal/pkg/serverutils/response.go
package serverutils

// APIResponse is the uniform success envelope for every endpoint.
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// APIError is the uniform error envelope.
type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) APIError {
	return APIError{
		Error: APIErrorBody{
			Code:    code,
			Message: message,
		},
	}
}

func ErrorResponseWithDetails(code int, message string, details interface{}) APIError {
	return APIError{
		Error: APIErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
