package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/theGnaNtechHub/Elearn/core/pseudo"
)

type pseudoApi struct {
	svc      pseudo.Service
	validate *validator.Validate
}

func registerPseudoAPI(g *echo.Group, svc pseudo.Service, validate *validator.Validate) {
	api := pseudoApi{
		svc:      svc,
		validate: validate,
	}

	g.POST("/evaluate", api.evaluate, countRequests(evaluations))
	g.POST("/syntax-hints", api.syntaxHints, countRequests(hintRequests))
	g.POST("/learning-suggestions", api.learningSuggestions, countRequests(suggestionRequests))
}

// Handlers

func (api *pseudoApi) evaluate(ctx echo.Context) error {
	var stepMode StepMode
	if err := stepMode.Bind(ctx); err != nil {
		return err
	}

	var data pseudo.EvaluateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EvaluateRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if stepMode.Set {
		data.StepByStep = stepMode.Enabled
	}

	res := api.svc.Evaluate(data.Source(), data.StepByStep)
	if res.Failed() {
		evaluationErrors.Add(1)
	}
	// program errors are part of a successful exchange
	return ctx.JSON(http.StatusOK, res)
}

func (api *pseudoApi) syntaxHints(ctx echo.Context) error {
	var data pseudo.CodeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CodeRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, pseudo.HintsResponse{
		Status: pseudo.StatusSuccess,
		Hints:  api.svc.SyntaxHints(data.Source()),
	})
}

func (api *pseudoApi) learningSuggestions(ctx echo.Context) error {
	var data pseudo.CodeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CodeRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, pseudo.SuggestionsResponse{
		Status:      pseudo.StatusSuccess,
		Suggestions: api.svc.LearningSuggestions(data.Source()),
	})
}
