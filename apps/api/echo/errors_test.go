package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/theGnaNtechHub/Elearn/core"
	"github.com/theGnaNtechHub/Elearn/tests"
)

func TestAppHTTPErrorHandler(t *testing.T) {
	conf := testutil.NewConfig()
	_, translator := testutil.NewValidate()

	tests := []struct {
		name     string
		method   string
		debug    bool
		err      error
		wantCode int
		wantBody string
		wantLog  bool
	}{
		{
			name:     "unexpected error",
			method:   http.MethodPost,
			err:      errors.New("evaluator crashed"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"status":"error","message":"Internal Server Error"}`,
			wantLog:  true,
		},
		{
			name:     "unexpected error in debug mode",
			method:   http.MethodPost,
			debug:    true,
			err:      errors.New("evaluator crashed"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"status":"error","message":"evaluator crashed"}`,
			wantLog:  true,
		},
		{
			name:     "wrapped http error",
			method:   http.MethodPost,
			err:      errors.Wrap(echo.NewHTTPError(http.StatusUnsupportedMediaType), "binding"),
			wantCode: http.StatusUnsupportedMediaType,
			wantBody: `{"status":"error","message":"Unsupported Media Type"}`,
		},
		{
			name:     "nested http error",
			method:   http.MethodPost,
			err:      echo.NewHTTPError(http.StatusBadRequest).SetInternal(echo.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"status":"error","message":"Not Found"}`,
		},
		{
			name:     "validation error without fields",
			method:   http.MethodPost,
			err:      core.NewValidationError(errors.New("code must be sent as JSON")),
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error","message":"code must be sent as JSON"}`,
		},
		{
			name:     "validation error with fields",
			method:   http.MethodPost,
			err:      core.NewValidationError(nil, core.FieldError{Field: "step_by_step", Error: "must be true or false"}),
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error","message":"invalid request","fields":{"step_by_step":"must be true or false"}}`,
		},
		{
			name:     "head request",
			method:   http.MethodHead,
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := testutil.NewLogger(conf)
			handler := newAppHTTPErrorHandler(logger, translator)

			e := echo.New()
			e.Debug = tt.debug
			req := httptest.NewRequest(tt.method, "/evaluate", nil)
			rec := httptest.NewRecorder()
			handler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantLog {
				assert.Contains(t, buf.String(), "ERROR Internal Server Error")
				assert.Contains(t, buf.String(), "request: "+tt.method+" /evaluate")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
