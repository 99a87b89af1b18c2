package echoapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theGnaNtechHub/Elearn/core"
)

func TestStepMode_Bind(t *testing.T) {
	tests := []struct {
		query   string
		want    StepMode
		wantErr bool
	}{
		{query: "", want: StepMode{}},
		{query: "?step_by_step=", want: StepMode{}},
		{query: "?step_by_step=true", want: StepMode{Enabled: true, Set: true}},
		{query: "?step_by_step=%20True%20", want: StepMode{Enabled: true, Set: true}},
		{query: "?step_by_step=1", want: StepMode{Enabled: true, Set: true}},
		{query: "?step_by_step=false", want: StepMode{Enabled: false, Set: true}},
		{query: "?step_by_step=yes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/evaluate"+tt.query, nil)
			ctx := echo.New().NewContext(req, httptest.NewRecorder())

			var sm StepMode
			err := sm.Bind(ctx)
			if tt.wantErr {
				var vErr *core.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, []core.FieldError{{Field: "step_by_step", Error: "must be true or false"}}, vErr.Fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sm)
		})
	}
}
