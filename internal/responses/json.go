package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/models"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// Error maps the domain error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a 500 with a generic message.
func Error(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var eligibilityErr *models.EligibilityError

	switch {
	case errors.As(err, &validationErr):
		Fail(c, http.StatusBadRequest, err, "Validation failed")
	case errors.As(err, &notFoundErr):
		Fail(c, http.StatusNotFound, err, "Not found")
	case errors.As(err, &eligibilityErr):
		Fail(c, http.StatusUnprocessableEntity, err, "Not eligible")
	default:
		Fail(c, http.StatusInternalServerError, nil, "Internal server error")
	}
}
