package router

import (
	"net/http"

	"behavior-go/internal/handlers"
	"behavior-go/internal/survey"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionLoaderMiddleware looks up the assessment session named by the
// cookie and adds it to the context. Unknown or missing ids start a new
// session, so a restarted server never leaves a "zombie" cookie behind.
func SessionLoaderMiddleware(log *zap.Logger, store *survey.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(handlers.SurveySessionKey).(string); ok {
			if s, found := store.Get(id); found {
				c.Set(handlers.SurveySessionKey, s)
				c.Next()
				return
			}
		}

		s, err := store.Create()
		if err != nil {
			log.Error("Could not start assessment session", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		session.Set(handlers.SurveySessionKey, s.ID)
		if err := session.Save(); err != nil {
			store.Delete(s.ID)
			log.Error("Could not save session cookie", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		log.Debug("Assessment session started", zap.String("session", s.ID))
		c.Set(handlers.SurveySessionKey, s)
		c.Next()
	}
}

// StageRequired sends the participant to the screen of their current
// stage unless it is one of the allowed stages.
func StageRequired(allowed ...survey.Stage) gin.HandlerFunc {
	return func(c *gin.Context) {
		stage := handlers.SessionFrom(c).Stage()
		for _, a := range allowed {
			if stage == a {
				c.Next()
				return
			}
		}
		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Redirect", handlers.StagePath(stage))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Redirect(http.StatusSeeOther, handlers.StagePath(stage))
		c.Abort()
	}
}
