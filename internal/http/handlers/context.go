package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/requestdata"
	"github.com/stembot/stembot-backend/internal/services"
)

// requestUser pulls the authenticated user's request data, aborting with 401
// when the auth middleware did not run.
func requestUser(c *gin.Context) (*requestdata.RequestData, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	return rd, true
}

// currentTier re-reads the tier from the user row so a mid-token upgrade or
// downgrade applies immediately instead of at next login.
func currentTier(c *gin.Context, users services.UserService, rd *requestdata.RequestData) (string, bool) {
	user, err := users.GetMe(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return "", false
	}
	return user.Tier, true
}

// pathUUID parses a :param path segment as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
