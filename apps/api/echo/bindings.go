package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/theGnaNtechHub/Elearn/core"
)

const stepModeParam = "step_by_step"

// StepMode lets clients ask for step records with a query parameter
// instead of the "step_by_step" body field.
type StepMode struct {
	Enabled bool
	Set     bool
}

func (sm *StepMode) Bind(ctx echo.Context) error {
	val := core.CleanString(ctx.QueryParam(stepModeParam), true /* lower */)
	if val == "" {
		return nil
	}
	enabled, err := strconv.ParseBool(val)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: stepModeParam, Error: "must be true or false"})
	}
	sm.Enabled, sm.Set = enabled, true
	return nil
}
