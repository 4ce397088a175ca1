package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(svc *services.Services) *UserController {
	return &UserController{Users: svc.Users}
}

// LoginPage shows the login form, or sends a logged-in user home.
func (uc *UserController) LoginPage(c *gin.Context) {
	if middlewares.CurrentUserID(c) != 0 {
		c.Redirect(http.StatusFound, homeFor(c.GetString(middlewares.CtxRole)))
		return
	}
	uc.renderLogin(c, http.StatusOK, c.Query("next"), "")
}

func (uc *UserController) renderLogin(c *gin.Context, status int, next, username string) {
	adminExists, err := uc.Users.AdminExists(c.Request.Context())
	if err != nil {
		fail(c, err, "/login")
		return
	}
	render(c, status, "login.html", gin.H{
		"Title":            "Login",
		"Next":             safeNext(next),
		"Username":         username,
		"AllowAdminSignup": !adminExists,
	})
}

// Login checks the credentials and issues the session cookie.
func (uc *UserController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	user, err := uc.Users.Authenticate(c.Request.Context(), username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.InfoLogger.WithField("username", username).Warn("failed login")
		middlewares.AddFlash(c, middlewares.FlashError, "Invalid username or password.")
		uc.renderLogin(c, http.StatusOK, next, username)
		return
	}
	if err != nil {
		fail(c, err, "/login")
		return
	}

	var memberID uint
	if user.MemberID != nil {
		memberID = *user.MemberID
	}
	token, err := utils.GenerateToken(user.ID, user.Role, memberID)
	if err != nil {
		fail(c, err, "/login")
		return
	}
	middlewares.SetSession(c, token)

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Username, user.Role)
	middlewares.AddFlash(c, middlewares.FlashSuccess, "Welcome back, "+user.Username+"!")

	if target := safeNext(next); target != "" {
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	c.Redirect(http.StatusSeeOther, homeFor(user.Role))
}

// AdminSignupPage is only reachable until the first admin exists.
func (uc *UserController) AdminSignupPage(c *gin.Context) {
	if !uc.signupOpen(c) {
		return
	}
	render(c, http.StatusOK, "admin_signup.html", gin.H{"Title": "Create admin"})
}

func (uc *UserController) AdminSignup(c *gin.Context) {
	if !uc.signupOpen(c) {
		return
	}

	_, err := uc.Users.CreateFirstAdmin(c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password1"),
		c.PostForm("password2"),
	)
	if errors.Is(err, services.ErrAdminExists) {
		middlewares.AddFlash(c, middlewares.FlashInfo, "An admin already exists. Please log in.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		fail(c, err, "/admin-signup")
		return
	}

	middlewares.AddFlash(c, middlewares.FlashSuccess, "Admin account created. Please log in.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (uc *UserController) signupOpen(c *gin.Context) bool {
	exists, err := uc.Users.AdminExists(c.Request.Context())
	if err != nil {
		fail(c, err, "/login")
		return false
	}
	if exists {
		middlewares.AddFlash(c, middlewares.FlashInfo, "An admin already exists. Please log in.")
		c.Redirect(http.StatusFound, "/login")
		return false
	}
	if middlewares.CurrentUserID(c) != 0 {
		c.Redirect(http.StatusFound, homeFor(c.GetString(middlewares.CtxRole)))
		return false
	}
	return true
}

// Logout revokes the session token and clears the cookie.
func (uc *UserController) Logout(c *gin.Context) {
	if token := c.GetString(middlewares.CtxToken); token != "" {
		utils.BlacklistToken(token)
	}
	if n := utils.PurgeBlacklist(time.Now()); n > 0 {
		utils.InfoLogger.Printf("Purged %d expired revoked tokens", n)
	}
	middlewares.ClearSession(c)
	middlewares.AddFlash(c, middlewares.FlashSuccess, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}
