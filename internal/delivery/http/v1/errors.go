package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/taskmanager/task-api/internal/dto"
	"github.com/taskmanager/task-api/internal/services"
)

// internalErrorMessage is the only text an unanticipated failure ever
// leaks to the caller.
const internalErrorMessage = "Something went wrong. Please try again later."

const validationFailedMessage = "Validation failed for one or more fields"

// errorResponse is the wire body of every non-2xx response.
type errorResponse struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newErrorResponse(status int, message string) errorResponse {
	return errorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now(),
	}
}

// translateError maps a service failure to its wire body. Anything
// outside the domain taxonomy becomes an opaque 500.
func translateError(err error) errorResponse {
	var notFound services.NotFoundError
	var validation services.ValidationError

	switch {
	case errors.As(err, &notFound):
		return newErrorResponse(http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		response := newErrorResponse(http.StatusBadRequest, validation.Error())
		response.Errors = validation.Fields
		return response
	case errors.Is(err, services.ErrDuplicateTask):
		return newErrorResponse(http.StatusConflict, err.Error())
	default:
		return newErrorResponse(http.StatusInternalServerError, internalErrorMessage)
	}
}

func abortWithError(c *gin.Context, err error) {
	response := translateError(err)
	c.AbortWithStatusJSON(response.Status, response)
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		newErrorResponse(http.StatusBadRequest, message))
}

func abortValidation(c *gin.Context, fields map[string]string) {
	response := newErrorResponse(http.StatusBadRequest, validationFailedMessage)
	response.Errors = fields
	c.AbortWithStatusJSON(response.Status, response)
}

// validationMessages turns the binding validator's per-field failures
// into the wire error map.
func validationMessages(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())

		var message string
		switch {
		case field == "title" && fe.Tag() == "required":
			message = dto.MsgTitleRequired
		case field == "title":
			message = dto.MsgTitleSize
		case field == "description":
			message = dto.MsgDescriptionSize
		case field == "completed":
			message = dto.MsgCompletedRequired
		default:
			message = "Invalid value"
		}
		fields[field] = message
	}

	return fields
}
