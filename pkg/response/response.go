// Package response holds the JSON bodies shared by middleware.
package response

// ErrorBody is the only error shape clients ever see.
type ErrorBody struct {
	Message string `json:"message"`
}

func Error(message string) ErrorBody {
	return ErrorBody{Message: message}
}
