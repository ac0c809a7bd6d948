package server

import (
	"strings"

	"campusforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	discussionPath = "/dashboard/discussion"
	newPostPath    = "/dashboard/discussion/new_post"
)

type createPostRequest struct {
	Title   string `json:"title" form:"title"`
	Content string `json:"content" form:"content"`
}

type searchRequest struct {
	Query string `json:"query" form:"query" query:"query"`
}

// GetDiscussion handles GET /dashboard/discussion
// @Summary Discussion listing
// @Description All posts, newest first, 10 per page.
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} object{page=string,posts=models.Page[models.Post]}
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/discussion [get]
func (s *Server) GetDiscussion(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext(), parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  "discussion",
		"posts": posts,
	})
}

// SearchPosts handles GET|POST /dashboard/discussion/recherche
// @Summary Search posts
// @Description Case-insensitive literal match on title or content, 7 per page.
// @Tags posts
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param query query string false "Keyword"
// @Param page query int false "Page number"
// @Success 200 {object} object{page=string,query=string,posts=models.Page[models.Post]}
// @Success 303 "Empty keyword"
// @Router /dashboard/discussion/recherche [get]
// @Router /dashboard/discussion/recherche [post]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	var req searchRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}
	if req.Query == "" {
		req.Query = c.Query("query")
	}

	keyword := strings.TrimSpace(req.Query)
	if keyword == "" {
		return redirect(c, discussionPath)
	}

	posts, err := s.postService.SearchPosts(c.UserContext(), keyword, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  "discussion",
		"query": keyword,
		"posts": posts,
	})
}

// NewPostForm handles GET /dashboard/discussion/new_post and /dashboard/discussion/pending
// @Summary New post form
// @Tags posts
// @Produce json
// @Success 200 {object} object{page=string}
// @Router /dashboard/discussion/new_post [get]
// @Router /dashboard/discussion/pending [get]
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "new_post"})
}

// CreatePost handles POST /dashboard/discussion/new_post
// @Summary Create post
// @Description Creates a post and redirects to the discussion listing. Empty fields redirect back to the form.
// @Tags posts
// @Accept x-www-form-urlencoded,json
// @Param request body createPostRequest true "Post"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard/discussion/new_post [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	id := currentIdentity(c)
	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  id.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	if post == nil {
		return redirect(c, newPostPath)
	}
	return redirect(c, discussionPath)
}

// GetPostDetail handles GET /dashboard/discussion/:postId
// @Summary Post detail
// @Description A post and its comments, newest first, 7 per page, each with its direct replies.
// @Tags posts
// @Produce json
// @Param postId path int true "Post ID"
// @Param page query int false "Page number"
// @Success 200 {object} object{page=string,post=models.Post,comments=models.Page[models.Comment],post_id=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/discussion/{postId} [get]
func (s *Server) GetPostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	ctx := c.UserContext()
	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}
	comments, err := s.commentService.ListComments(ctx, postID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"page":     "post_detail",
		"post":     post,
		"comments": comments,
		"post_id":  postID,
	})
}
