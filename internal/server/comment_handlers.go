package server

import (
	"strconv"

	"campusforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Comment string `json:"comment" form:"comment"`
}

type replyRequest struct {
	Reply string `json:"reply" form:"reply"`
}

func postDetailPath(postID uint) string {
	return discussionPath + "/" + strconv.FormatUint(uint64(postID), 10)
}

// CreateComment handles POST /dashboard/discussion/:postId
// @Summary Comment on a post
// @Description Adds a top-level comment. Empty content is ignored. Always redirects to the post detail.
// @Tags comments
// @Accept x-www-form-urlencoded,json
// @Param postId path int true "Post ID"
// @Param request body commentRequest true "Comment"
// @Success 303
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/discussion/{postId} [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	id := currentIdentity(c)
	if _, err := s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:  id.UserID,
		PostID:  postID,
		Content: req.Comment,
	}); err != nil {
		return s.respondError(c, err)
	}
	return redirect(c, postDetailPath(postID))
}

// CreateReply handles POST /dashboard/discussion/:postId/:commentId/reply
// @Summary Reply to a comment
// @Description Adds a reply to a comment of the same post. Empty content is ignored.
// @Tags comments
// @Accept x-www-form-urlencoded,json
// @Param postId path int true "Post ID"
// @Param commentId path int true "Parent comment ID"
// @Param request body replyRequest true "Reply"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/discussion/{postId}/{commentId}/reply [post]
func (s *Server) CreateReply(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	parentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req replyRequest
	if err := bindForm(c, &req); err != nil {
		return respondInvalidBody(c)
	}

	id := currentIdentity(c)
	if _, err := s.commentService.AddReply(c.UserContext(), service.AddReplyInput{
		UserID:   id.UserID,
		PostID:   postID,
		ParentID: parentID,
		Content:  req.Reply,
	}); err != nil {
		return s.respondError(c, err)
	}
	return redirect(c, postDetailPath(postID))
}
