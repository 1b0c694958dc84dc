package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stembot/stembot-backend/internal/http/response"
	"github.com/stembot/stembot-backend/internal/services"
)

// maxWebhookBody caps the Stripe webhook payload we are willing to read.
const maxWebhookBody = int64(65536)

type BillingHandler struct {
	billingService services.BillingService
	usageService   services.UsageService
	userService    services.UserService
}

func NewBillingHandler(
	billingService services.BillingService,
	usageService services.UsageService,
	userService services.UserService,
) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		usageService:   usageService,
		userService:    userService,
	}
}

func (bh *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	var req struct {
		Tier string `json:"tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}
	url, err := bh.billingService.CreateCheckoutSession(c.Request.Context(), rd.UserID, req.Tier)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}

func (bh *BillingHandler) CreatePortalSession(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	url, err := bh.billingService.CreatePortalSession(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}

// Webhook receives Stripe events. Unauthenticated; the signature header is
// the credential.
func (bh *BillingHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	sig := c.GetHeader("Stripe-Signature")
	if err := bh.billingService.HandleWebhook(c.Request.Context(), body, sig); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"received": true})
}

func (bh *BillingHandler) Summary(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	tier, ok := currentTier(c, bh.userService, rd)
	if !ok {
		return
	}
	summary, err := bh.billingService.Summary(c.Request.Context(), rd.UserID, tier)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

// Usage returns the caller's AI-interaction headroom for the current month.
func (bh *BillingHandler) Usage(c *gin.Context) {
	rd, ok := requestUser(c)
	if !ok {
		return
	}
	tier, ok := currentTier(c, bh.userService, rd)
	if !ok {
		return
	}
	decision, err := bh.usageService.CheckAIUsage(c.Request.Context(), rd.UserID, tier)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, decision)
}
