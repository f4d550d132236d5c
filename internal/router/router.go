package router

import (
	"net/http"
	"time"

	"behavior-go/internal/config"
	"behavior-go/internal/handlers"
	"behavior-go/internal/survey"
	"behavior-go/internal/tracker"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again in %s.", time.Until(info.ResetTime).Round(time.Second))
}

// newLimiter allows limit POSTs per client per minute.
func newLimiter(limit uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: limit,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})
}

// newEngine builds the middleware chain shared by both programs.
func newEngine(log *zap.Logger, server config.ServerConfig, cookieName string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   server.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions(cookieName, store))

	router.Use(NonceMiddleware(log))
	router.Use(CSRFProtection())
	router.Use(ContentSecurityPolicy())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			log.Warn("Request blocked by security middleware", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	})

	if server.AssetsDir != "" {
		router.Static("/assets", server.AssetsDir)
	}
	return router
}

// Setup wires the assessment program: consent, the SPSRQ, the RSS or ASQ
// follow-up, and the summary with its CSV export.
func Setup(log *zap.Logger, server config.ServerConfig, store *survey.Store, exportDir string, archive handlers.SessionArchive) *gin.Engine {
	router := newEngine(log, server, "assessment")
	router.Use(SessionLoaderMiddleware(log, store))

	consentHandler := handlers.NewConsentHandler(log)
	assessmentHandler := handlers.NewAssessmentHandler(log, store.Bank(), exportDir, archive)
	resultsHandler := handlers.NewResultsHandler(log)
	limiter := newLimiter(20)

	router.GET("/", consentHandler.ShowConsentPage)
	router.POST("/consent", limiter, StageRequired(survey.StageConsent), consentHandler.Consent)

	assessmentRoutes := router.Group("/assessment")
	{
		assessmentRoutes.GET("", StageRequired(survey.StageSPSRQ, survey.StageFollowUp), assessmentHandler.Start)
		assessmentRoutes.POST("/spsrq", limiter, StageRequired(survey.StageSPSRQ), assessmentHandler.SubmitSPSRQ)
		assessmentRoutes.POST("/followup", limiter, StageRequired(survey.StageFollowUp), assessmentHandler.SubmitFollowUp)

		completed := assessmentRoutes.Group("", StageRequired(survey.StageSummary))
		completed.GET("/summary", resultsHandler.ShowResults)
		completed.GET("/export", resultsHandler.Export)
	}

	return router
}

// SetupTracker wires the weekly sticker chart program.
func SetupTracker(log *zap.Logger, server config.ServerConfig, t *tracker.Tracker, archive handlers.WeekArchive) *gin.Engine {
	router := newEngine(log, server, "tracker")

	trackerHandler := handlers.NewTrackerHandler(log, t, archive)
	limiter := newLimiter(60)

	router.GET("/", trackerHandler.ShowTracker)
	router.POST("/week", limiter, trackerHandler.SaveWeek)
	router.POST("/phase", limiter, trackerHandler.AdvancePhase)
	router.POST("/schedule", limiter, trackerHandler.SetSchedule)
	router.POST("/rollover", limiter, trackerHandler.Rollover)
	router.GET("/logs/:week", trackerHandler.DownloadLog)

	return router
}

// Unavailable serves a blocking error page on every route. It is used when
// a program cannot load its input files.
func Unavailable(log *zap.Logger, server config.ServerConfig, title string, err error) *gin.Engine {
	router := newEngine(log, server, "unavailable")
	router.NoRoute(handlers.Unavailable(log, title, err))
	return router
}
