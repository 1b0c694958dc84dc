package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

type WritingHandler struct {
	writingService services.WritingService
	userService    services.UserService
}

func NewWritingHandler(writingService services.WritingService, userService services.UserService) *WritingHandler {
	return &WritingHandler{writingService: writingService, userService: userService}
}

func (wh *WritingHandler) GenerateOutline(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	tier, ok := currentTier(c, wh.userService, rd)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	outline, err := wh.writingService.GenerateOutline(c.Request.Context(), rd.UserID, tier, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"outline": outline})
}

func (wh *WritingHandler) GetOutline(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	outline, err := wh.writingService.GetOutline(c.Request.Context(), rd.UserID, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"outline": outline})
}

func (wh *WritingHandler) SaveSectionDraft(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Heading string `json:"heading"`
		Draft   string `json:"draft"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	outline, err := wh.writingService.SaveSectionDraft(c.Request.Context(), rd.UserID, projectID, req.Heading, req.Draft)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"outline": outline})
}
