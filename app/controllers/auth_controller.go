package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/eduportal/app/services"
	"github.com/shashiranjanraj/eduportal/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type signupResponse struct {
	Message  string `json:"message"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Approved bool   `json:"approved"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

type adminLoginResponse struct {
	Message   string `json:"message"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	SessionID string `json:"sessionID"`
}

// Signup handles POST /signup.
func (c *AuthController) Signup(cx *ctx.Context) {
	var in services.SignupInput
	if !cx.BindJSON(&in) {
		return
	}

	res, err := c.service.Signup(cx.Context(), in)
	if err != nil {
		cx.Fail(err, "Error in signup")
		return
	}

	cx.OK(signupResponse{
		Message:  "Signup successful",
		Role:     res.Role,
		Username: res.Username,
		Approved: res.Approved,
	})
}

// Login handles POST /login. A missing or malformed body is checked as
// empty credentials.
func (c *AuthController) Login(cx *ctx.Context) {
	var in services.Credentials
	cx.BindJSONOrEmpty(&in)

	user, err := c.service.Login(cx.Context(), in)
	if err != nil {
		cx.Fail(err, "Error in login")
		return
	}

	cx.OK(loginResponse{Message: "Login successful", Role: user.Role, Username: user.Username})
}

// AdminLogin handles POST /admin/login.
func (c *AuthController) AdminLogin(cx *ctx.Context) {
	var in services.Credentials
	cx.BindJSONOrEmpty(&in)

	session, err := c.service.AdminLogin(cx.Context(), in)
	if err != nil {
		cx.Fail(err, "Error in admin login")
		return
	}

	cx.OK(adminLoginResponse{
		Message:   "Admin login successful",
		Role:      "admin",
		Username:  session.Username,
		SessionID: session.SessionID,
	})
}

// Logout handles POST /logout. There is no server-side session to end.
func (c *AuthController) Logout(cx *ctx.Context) {
	cx.Message(http.StatusOK, "Logout successful")
}
