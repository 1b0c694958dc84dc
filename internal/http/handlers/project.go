package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	userService    services.UserService
}

func NewProjectHandler(projectService services.ProjectService, userService services.UserService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, userService: userService}
}

func (ph *ProjectHandler) Create(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	tier, ok := currentTier(c, ph.userService, rd)
	if !ok {
		return
	}

	var req services.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	result, err := ph.projectService.CreateProject(c.Request.Context(), rd.UserID, tier, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, result)
}

func (ph *ProjectHandler) List(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projects, err := ph.projectService.ListProjects(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"projects": projects})
}

func (ph *ProjectHandler) Get(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	project, err := ph.projectService.GetProject(c.Request.Context(), rd.UserID, projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) Update(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	project, err := ph.projectService.UpdateProject(c.Request.Context(), rd.UserID, projectID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ph.projectService.DeleteProject(c.Request.Context(), rd.UserID, projectID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
