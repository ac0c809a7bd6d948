package server

import (
	"campusforum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard handles GET /dashboard
// @Summary Dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} object{page=string,username=string}
// @Success 303 "Not logged in"
// @Router /dashboard [get]
func (s *Server) Dashboard(c *fiber.Ctx) error {
	id := currentIdentity(c)
	user, err := s.authService.GetUser(c.UserContext(), id.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			// The token outlived its account.
			s.clearSessionCookie(c)
			return redirect(c, "/")
		}
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "dashboard",
		"username": user.Username,
	})
}

// ViewerMenu handles GET /dashboard/mes-posts-et-commentaires
// @Summary Own posts and comments menu
// @Tags dashboard
// @Produce json
// @Success 200 {object} object{page=string}
// @Router /dashboard/mes-posts-et-commentaires [get]
func (s *Server) ViewerMenu(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "p_v_viewer"})
}

// GetMyPosts handles GET /dashboard/mes-posts
// @Summary Own posts
// @Description Posts written by the current user, newest first, 7 per page.
// @Tags dashboard
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} object{page=string,posts=models.Page[models.Post]}
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/mes-posts [get]
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	id := currentIdentity(c)
	posts, err := s.postService.ListUserPosts(c.UserContext(), id.UserID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  "post_viewer",
		"posts": posts,
	})
}

// GetMyComments handles GET /dashboard/mes-commentaires
// @Summary Own comments
// @Description Comments written by the current user, newest first, 7 per page.
// @Tags dashboard
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} object{page=string,comments=models.Page[models.Comment]}
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/mes-commentaires [get]
func (s *Server) GetMyComments(c *fiber.Ctx) error {
	id := currentIdentity(c)
	comments, err := s.commentService.ListUserComments(c.UserContext(), id.UserID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":     "comment_viewer",
		"comments": comments,
	})
}

// GetFeatureFlags handles GET /dashboard/feature-flags
// @Summary Feature flags
// @Description Configured feature flags and their state for the current user.
// @Tags dashboard
// @Produce json
// @Success 200 {object} object{raw=map[string]string,evaluated=map[string]bool}
// @Router /dashboard/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	id := currentIdentity(c)
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(id.UserID),
	})
}
