package handlers

import (
	"errors"
	"net/http"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/views"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the router middleware.
const (
	csrfTokenContextKey = "csrf_token"
	cspNonceContextKey  = "csp_nonce"
)

// SurveySessionKey holds the assessment session id in the cookie session
// and the loaded session in the request context.
const SurveySessionKey = "survey_session"

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// render writes component with status, inside the layout unless the
// request came from htmx.
func render(c *gin.Context, status int, title string, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)

	if isHTMX(c) {
		component.Render(c.Request.Context(), c.Writer)
		return
	}
	views.Layout(title, c.GetString(csrfTokenContextKey), c.GetString(cspNonceContextKey)).Render(
		templ.WithChildren(c.Request.Context(), component),
		c.Writer,
	)
}

// redirect sends the browser to path after a POST.
func redirect(c *gin.Context, path string) {
	if isHTMX(c) {
		c.Header("HX-Redirect", path)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, path)
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrDataUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrValidationFailed), errors.Is(err, models.ErrIncompleteSubmission):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrStageOrder):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail renders a blocking error page.
func fail(c *gin.Context, log *zap.Logger, title string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(title, zap.Error(err))
	} else {
		log.Warn(title, zap.Error(err))
	}
	render(c, status, title, views.ErrorPage(title, err.Error()))
}

// StagePath is the screen that serves a session stage.
func StagePath(stage survey.Stage) string {
	switch stage {
	case survey.StageConsent:
		return "/"
	case survey.StageSPSRQ, survey.StageFollowUp:
		return "/assessment"
	}
	return "/assessment/summary"
}

// SessionFrom returns the assessment session attached by the router's
// session loader.
func SessionFrom(c *gin.Context) *survey.Session {
	return c.MustGet(SurveySessionKey).(*survey.Session)
}

// Unavailable answers every request with the blocking error page for err.
func Unavailable(log *zap.Logger, title string, err error) gin.HandlerFunc {
	return func(c *gin.Context) {
		fail(c, log, title, err)
	}
}
