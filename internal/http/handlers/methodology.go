package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

type MethodologyHandler struct {
	methodologyService services.MethodologyService
}

func NewMethodologyHandler(methodologyService services.MethodologyService) *MethodologyHandler {
	return &MethodologyHandler{methodologyService: methodologyService}
}

func (mh *MethodologyHandler) Recommend(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rec, err := mh.methodologyService.Recommend(c.Request.Context(), rd.UserID, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

func (mh *MethodologyHandler) Save(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.SaveMethodologyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	result, err := mh.methodologyService.Save(c.Request.Context(), rd.UserID, projectID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (mh *MethodologyHandler) Get(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := mh.methodologyService.Get(c.Request.Context(), rd.UserID, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// SampleSize gives advisory feedback on a proposed sample size without
// requiring a saved methodology: ?n=40&method_type=survey
func (mh *MethodologyHandler) SampleSize(c *gin.Context) {
	if _, ok := requestUser(c); !ok {
		return
	}
	n, err := strconv.Atoi(c.Query("n"))
	if err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	feedback := mh.methodologyService.SampleSizeFeedback(c.Request.Context(), n, c.Query("method_type"))
	response.RespondOK(c, gin.H{"n": n, "feedback": feedback, "ok": feedback == ""})
}
