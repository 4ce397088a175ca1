package middlewares

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/utils"
)

// SessionCookie carries the signed JWT for browser sessions.
const SessionCookie = "session"

// Context keys set by AuthMiddleware.
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxMemberID = "member_id"
	CtxToken    = "token"
)

// TokenFromRequest returns the bearer token or, failing that, the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// LoadSession populates the context from a valid session and reports whether
// one was found.
func LoadSession(c *gin.Context) (bool, error) {
	if _, ok := c.Get(CtxUserID); ok {
		return true, nil
	}

	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return false, errors.New("authentication required")
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return false, err
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxMemberID, claims.MemberID)
	c.Set(CtxToken, tokenString)
	return true, nil
}

// OptionalAuth loads a session when one is present and never aborts.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _ = LoadSession(c)
		c.Next()
	}
}

// AuthMiddleware requires a valid session. Page requests without one are sent
// to the login page, API requests get a 401 envelope.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := LoadSession(c)
		if !ok {
			if TokenFromRequest(c) != "" {
				ClearSession(c)
			}
			unauthorized(c, err)
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, err error) {
	if wantsJSON(c) {
		utils.RespondError(c, http.StatusUnauthorized, err)
		c.Abort()
		return
	}
	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") || utils.IsXHR(c)
}

// SetSession stores a freshly issued token in an HttpOnly cookie.
func SetSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(utils.TokenTTL.Seconds()), "/", "", false, true)
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// CurrentUserID returns the authenticated user's id, or 0.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(CtxUserID)
}

// CurrentMemberID returns the member linked to the session, or 0 when none is.
func CurrentMemberID(c *gin.Context) uint {
	return c.GetUint(CtxMemberID)
}

// IsAdmin reports whether the session belongs to an admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxRole) == "admin"
}
