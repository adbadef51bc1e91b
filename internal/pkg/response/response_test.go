package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"talentnest/internal/pkg/apperr"
)

func TestFromError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"forbidden", apperr.New(apperr.KindAuthorization, "FORBIDDEN", "nope"), http.StatusForbidden, "FORBIDDEN"},
		{"state", apperr.New(apperr.KindInvalidState, "INVALID_STATUS_TRANSITION", "no"), http.StatusConflict, "INVALID_STATUS_TRANSITION"},
		{"not found", apperr.New(apperr.KindNotFound, "NOT_FOUND", "missing"), http.StatusNotFound, "NOT_FOUND"},
		{"dependency", apperr.Dependency(errors.New("db down"), "load"), http.StatusServiceUnavailable, "DEPENDENCY_ERROR"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			FromError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}
