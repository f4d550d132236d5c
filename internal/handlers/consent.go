package handlers

import (
	"errors"
	"net/http"

	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pageTitle = "Behavior Assessment"

type ConsentHandler struct {
	log *zap.Logger
}

func NewConsentHandler(log *zap.Logger) *ConsentHandler {
	return &ConsentHandler{log: log}
}

// ShowConsentPage serves the consent form, or sends a participant who has
// already consented on to their current screen.
func (h *ConsentHandler) ShowConsentPage(c *gin.Context) {
	s := SessionFrom(c)
	if stage := s.Stage(); stage != survey.StageConsent {
		c.Redirect(http.StatusSeeOther, StagePath(stage))
		return
	}
	render(c, http.StatusOK, pageTitle, views.Consent(views.ConsentData{
		CSRFToken: c.GetString(csrfTokenContextKey),
	}))
}

func (h *ConsentHandler) Consent(c *gin.Context) {
	s := SessionFrom(c)
	name := c.PostForm("name")

	err := s.Consent(name)
	switch {
	case err == nil:
		h.log.Info("Consent given", zap.String("session", s.ID), zap.String("participant", s.Participant().Name))
		redirect(c, "/assessment")
	case errors.Is(err, models.ErrValidationFailed):
		render(c, http.StatusUnprocessableEntity, pageTitle, views.Consent(views.ConsentData{
			CSRFToken: c.GetString(csrfTokenContextKey),
			Name:      name,
			Message:   &views.Message{Kind: views.AlertWarning, Text: "Please enter your full name before submitting."},
		}))
	case errors.Is(err, models.ErrStageOrder):
		redirect(c, StagePath(s.Stage()))
	default:
		fail(c, h.log, "Could not record consent", err)
	}
}
