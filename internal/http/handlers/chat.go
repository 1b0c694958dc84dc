package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
	userService services.UserService
}

func NewChatHandler(chatService services.ChatService, userService services.UserService) *ChatHandler {
	return &ChatHandler{chatService: chatService, userService: userService}
}

func (ch *ChatHandler) CreateThread(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	thread, err := ch.chatService.CreateThread(c.Request.Context(), rd.UserID, projectID, req.Title)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"thread": thread})
}

func (ch *ChatHandler) ListThreads(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	threads, err := ch.chatService.ListThreads(c.Request.Context(), rd.UserID, projectID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"threads": threads})
}

func (ch *ChatHandler) ListMessages(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	threadID, ok := pathUUID(c, "threadId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	var beforeSeq *int64
	if raw := c.Query("before_seq"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.RespondError(c, 400, "invalid_request", err)
			return
		}
		beforeSeq = &parsed
	}
	messages, err := ch.chatService.ListMessages(c.Request.Context(), rd.UserID, threadID, limit, beforeSeq)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": messages})
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	tier, ok := currentTier(c, ch.userService, rd)
	if !ok {
		return
	}
	threadID, ok := pathUUID(c, "threadId")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	result, err := ch.chatService.SendMessage(c.Request.Context(), rd.UserID, tier, threadID, req.Content)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ch *ChatHandler) DeleteThread(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	threadID, ok := pathUUID(c, "threadId")
	if !ok {
		return
	}
	if err := ch.chatService.DeleteThread(c.Request.Context(), rd.UserID, threadID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
