package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
)

type MemberController struct {
	Members *services.MemberService
	Users   *services.UserService
}

func NewMemberController(svc *services.Services) *MemberController {
	return &MemberController{Members: svc.Members, Users: svc.Users}
}

func (mc *MemberController) ManageMembers(c *gin.Context) {
	ctx := c.Request.Context()
	members, err := mc.Members.ListAll(ctx)
	if err != nil {
		fail(c, err, "/manage-members")
		return
	}
	accounts, err := mc.Users.AccountsByMember(ctx)
	if err != nil {
		fail(c, err, "/manage-members")
		return
	}
	render(c, http.StatusOK, "manage_members.html", gin.H{
		"Title":    "Members",
		"Members":  members,
		"Accounts": accounts,
	})
}

// MemberAction dispatches on the form's action field: add, edit, toggle or account.
func (mc *MemberController) MemberAction(c *gin.Context) {
	var (
		msg string
		err error
	)
	switch c.PostForm("action") {
	case "add":
		msg, err = mc.add(c)
	case "edit":
		msg, err = mc.edit(c)
	case "toggle":
		msg, err = mc.toggle(c)
	case "account":
		msg, err = mc.account(c)
	default:
		err = &services.ValidationError{Field: "action", Message: "unknown action"}
	}
	if err != nil {
		fail(c, err, "/manage-members")
		return
	}

	middlewares.AddFlash(c, middlewares.FlashSuccess, msg)
	c.Redirect(http.StatusSeeOther, "/manage-members")
}

func (mc *MemberController) add(c *gin.Context) (string, error) {
	serial, err := strconv.Atoi(strings.TrimSpace(c.PostForm("serial_number")))
	if err != nil {
		return "", &services.ValidationError{Field: "serial_number", Message: "serial number must be a whole number"}
	}
	member, err := mc.Members.Create(c.Request.Context(), c.PostForm("name"), serial)
	if err != nil {
		return "", err
	}
	return "Added member: " + member.Name, nil
}

func (mc *MemberController) edit(c *gin.Context) (string, error) {
	id, err := formID(c, "member_id")
	if err != nil {
		return "", err
	}
	newName := strings.TrimSpace(c.PostForm("name"))
	oldName, err := mc.Members.Rename(c.Request.Context(), id, newName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated member name from '%s' to '%s'", oldName, newName), nil
}

func (mc *MemberController) toggle(c *gin.Context) (string, error) {
	ctx := c.Request.Context()
	id, err := formID(c, "member_id")
	if err != nil {
		return "", err
	}
	active, err := mc.Members.ToggleActive(ctx, id)
	if err != nil {
		return "", err
	}
	member, err := mc.Members.Get(ctx, id)
	if err != nil {
		return "", err
	}
	status := "deactivated"
	if active {
		status = "activated"
	}
	return member.Name + " " + status, nil
}

func (mc *MemberController) account(c *gin.Context) (string, error) {
	ctx := c.Request.Context()
	id, err := formID(c, "member_id")
	if err != nil {
		return "", err
	}
	user, err := mc.Users.CreateMemberAccount(ctx, id, c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		return "", err
	}
	member, err := mc.Members.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Login %s created for %s", user.Username, member.Name), nil
}
