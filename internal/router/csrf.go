package router

import (
	"errors"
	"net/http"

	"behavior-go/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Keys for the token in the session, form, context and header.
const (
	csrfTokenSessionKey = "csrf_token"
	csrfTokenFormKey    = "_csrf"
	csrfTokenContextKey = "csrf_token"
	csrfTokenHeaderKey  = "X-CSRF-Token"
)

// CSRFProtection keeps one token per cookie session and checks it on every
// unsafe request, from the form field or the X-CSRF-Token header.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, ok := session.Get(csrfTokenSessionKey).(string)
		if !ok {
			newToken, err := utils.GenerateSecureToken(32)
			if err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to generate CSRF token"))
				return
			}
			token = newToken
			session.Set(csrfTokenSessionKey, token)
			if err := session.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to save session"))
				return
			}
		}

		c.Set(csrfTokenContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		// A token minted on this request cannot match a submitted one.
		if !ok {
			rejectCSRF(c, errors.New("CSRF token not found in session"))
			return
		}

		submitted := c.PostForm(csrfTokenFormKey)
		if submitted == "" {
			submitted = c.GetHeader(csrfTokenHeaderKey)
		}
		if submitted == "" || submitted != token {
			rejectCSRF(c, errors.New("invalid CSRF token"))
			return
		}

		c.Next()
	}
}

func rejectCSRF(c *gin.Context, err error) {
	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Redirect", "/")
	}
	c.AbortWithError(http.StatusForbidden, err)
}
