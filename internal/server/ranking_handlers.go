package server

import (
	"strings"

	"campusforum/internal/ranking"

	"github.com/gofiber/fiber/v2"
)

type classementRequest struct {
	Course string `json:"Course" form:"Course"`
}

// CourseCatalogue handles GET /dashboard/course
// @Summary Course sectors
// @Tags ranking
// @Produce json
// @Success 200 {object} object{page=string,sectors=[]ranking.Sector}
// @Router /dashboard/course [get]
func (s *Server) CourseCatalogue(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":    "request",
		"sectors": s.rankingService.Sectors(),
	})
}

// Classement handles POST /dashboard/course/classement
// @Summary University ranking
// @Description Top universities of a course sector, scraped from the league table.
// @Tags ranking
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body classementRequest true "Course sector key"
// @Success 200 {object} ranking.Result
// @Failure 404 {object} ranking.Result
// @Failure 502 {object} ranking.Result
// @Router /dashboard/course/classement [post]
func (s *Server) Classement(c *fiber.Ctx) error {
	var req classementRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	res := s.rankingService.Classement(c.UserContext(), strings.TrimSpace(req.Course))
	return c.Status(statusForRanking(res.Status)).JSON(res)
}

func statusForRanking(status ranking.Status) int {
	switch status {
	case ranking.StatusOK:
		return fiber.StatusOK
	case ranking.StatusNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}
