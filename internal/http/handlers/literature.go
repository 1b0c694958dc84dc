package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

type LiteratureHandler struct {
	literatureService services.LiteratureService
}

func NewLiteratureHandler(literatureService services.LiteratureService) *LiteratureHandler {
	return &LiteratureHandler{literatureService: literatureService}
}

func (lh *LiteratureHandler) Add(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.AddSourceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	source, err := lh.literatureService.AddSource(c.Request.Context(), rd.UserID, projectID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"source": source})
}

func (lh *LiteratureHandler) List(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sources, err := lh.literatureService.ListSources(c.Request.Context(), rd.UserID, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sources": sources})
}

func (lh *LiteratureHandler) Update(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sourceID, ok := pathUUID(c, "sourceId")
	if !ok {
		return
	}
	var req services.UpdateSourceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	source, err := lh.literatureService.UpdateSource(c.Request.Context(), rd.UserID, projectID, sourceID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"source": source})
}

func (lh *LiteratureHandler) Delete(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	sourceID, ok := pathUUID(c, "sourceId")
	if !ok {
		return
	}
	if err := lh.literatureService.DeleteSource(c.Request.Context(), rd.UserID, projectID, sourceID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
