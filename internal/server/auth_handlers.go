package server

import (
	"log/slog"

	"campusforum/internal/auth"
	"campusforum/internal/middleware"
	"campusforum/internal/models"
	"campusforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Index handles GET|POST / and GET /signup
// @Summary Landing page
// @Tags auth
// @Produce json
// @Success 200 {object} object{page=string}
// @Router / [get]
// @Router / [post]
// @Router /signup [get]
func (s *Server) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "index"})
}

// SignupPage handles GET|POST /query_db
// @Summary Signup form
// @Tags auth
// @Produce json
// @Success 200 {object} object{page=string}
// @Router /query_db [get]
// @Router /query_db [post]
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "signup"})
}

// Signup handles POST /signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body signupRequest true "Signup request"
// @Success 201 {object} object{page=string,success_message=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	user, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"page":            "index",
		"success_message": service.MsgSignupSuccess,
		"user":            user,
	})
}

// Login handles POST /login
// @Summary User login
// @Description Checks the credentials, sets the session cookie and redirects to the dashboard.
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 303 {object} object{token=string,expires_at=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	user, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	token, session, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token, session.ExpiresAt)

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", slog.Uint64("user_id", uint64(user.ID)))

	c.Location("/dashboard")
	return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
		"token":      token,
		"expires_at": session.ExpiresAt,
	})
}

// Logout handles POST /logout
// @Summary Logout
// @Description Revokes the current session token and clears the session cookie.
// @Tags auth
// @Success 303
// @Router /logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if session, ok := middleware.SessionFromLocals(c); ok {
		if err := auth.Revoke(c.UserContext(), s.redis, session); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session token",
				slog.String("error", err.Error()),
			)
		}
	}
	s.clearSessionCookie(c)
	return redirect(c, "/")
}
