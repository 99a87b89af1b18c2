package echoapi

import (
	"expvar"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	evaluations        = expvar.NewInt("evaluations")
	evaluationErrors   = expvar.NewInt("evaluationErrors")
	hintRequests       = expvar.NewInt("hintRequests")
	suggestionRequests = expvar.NewInt("suggestionRequests")
)

func newRequestID() string {
	return uuid.New().String()
}

// countRequests increments counter for every request reaching the handler.
func countRequests(counter *expvar.Int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			counter.Add(1)
			return next(ctx)
		}
	}
}
