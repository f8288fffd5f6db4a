package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, APIResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		panic(err)
	}
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, map[string]string{"slug": "garden"}, "Project created")
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Project created", body.Message)
	require.NotNil(t, body.Data)
}

func TestErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", models.NewValidationError("minimum donation amount is 1.00"), http.StatusBadRequest, "Validation failed"},
		{"not found", models.NewNotFoundError("project"), http.StatusNotFound, "Not found"},
		{"eligibility", models.NewEligibilityError("you cannot donate to your own project"), http.StatusUnprocessableEntity, "Not eligible"},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := record(func(c *gin.Context) { Error(c, tc.err) })

			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestErrorHidesInternalDetail(t *testing.T) {
	_, body := record(func(c *gin.Context) { Error(c, errors.New("pg: connection refused")) })
	assert.Empty(t, body.Error)
}

func TestErrorSurfacesDomainDetail(t *testing.T) {
	_, body := record(func(c *gin.Context) { Error(c, models.NewNotFoundError("category")) })
	assert.Equal(t, "category not found", body.Error)
}
