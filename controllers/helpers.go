package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

// render fills the values every page layout expects and writes the template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = middlewares.PopFlashes(c)
	data["LoggedIn"] = middlewares.CurrentUserID(c) != 0
	data["IsAdmin"] = middlewares.IsAdmin(c)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, name, data)
}

// statusFor maps ledger errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case services.IsValidation(err):
		return http.StatusBadRequest
	case services.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDecisionLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage turns an error into a sentence fit for a flash message.
func userMessage(err error) string {
	var v *services.ValidationError
	if errors.As(err, &v) {
		return sentence(v.Message)
	}
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return sentence(nf.Error())
	}
	return "Something went wrong. Please try again."
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// fail reports err on a form page: input problems become a flash and a
// redirect back to the form, anything else renders the error page.
func fail(c *gin.Context, err error, back string) {
	status := statusFor(err)
	if status == http.StatusBadRequest || status == http.StatusConflict {
		middlewares.AddFlash(c, middlewares.FlashError, userMessage(err))
		c.Redirect(http.StatusSeeOther, back)
		return
	}
	if status == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.Request.URL.Path).Error(err)
	}
	render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": userMessage(err),
	})
}

// failJSON is fail for API and XHR callers.
func failJSON(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.Request.URL.Path).Error(err)
		utils.RespondError(c, status, errors.New("internal server error"))
		return
	}
	utils.RespondError(c, status, err)
}

func formID(c *gin.Context, field string) (uint, error) {
	return parseID(field, c.PostForm(field))
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, &services.ValidationError{Field: field, Message: "a valid " + strings.ReplaceAll(field, "_", " ") + " is required"}
	}
	return uint(id), nil
}

// safeNext accepts only same-origin relative paths.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}

func homeFor(role string) string {
	if role == "admin" {
		return "/"
	}
	return "/my-meals"
}

// weekParam reads ?week=YYYY-MM-DD and normalises it to a week start,
// defaulting to the week containing today.
func weekParam(c *gin.Context, today time.Time) (time.Time, error) {
	raw := c.Query("week")
	if raw == "" {
		return calendar.WeekStart(today), nil
	}
	d, err := services.ParseDate("week", raw, today.Location())
	if err != nil {
		return time.Time{}, err
	}
	return calendar.WeekStart(d), nil
}
