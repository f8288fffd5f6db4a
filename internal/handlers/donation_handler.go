package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/middlewares"
	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type DonationHandler struct {
	donationService  *services.DonationService
	analyticsService *services.AnalyticsService
}

func NewDonationHandler(donationService *services.DonationService, analyticsService *services.AnalyticsService) *DonationHandler {
	return &DonationHandler{donationService: donationService, analyticsService: analyticsService}
}

type donationRequest struct {
	AmountPence int64  `json:"amount_pence" binding:"required"`
	Message     string `json:"message"`
	Anonymous   bool   `json:"anonymous"`
}

// Donate handles POST /api/v1/projects/:slug/donations.
func (h *DonationHandler) Donate(c *gin.Context) {
	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	result, err := h.donationService.Record(
		c.Request.Context(),
		c.Param("slug"),
		middlewares.CurrentUserID(c),
		req.AmountPence,
		req.Message,
		req.Anonymous,
	)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, result, "Thank you for your donation")
}

// UserDonations handles GET /api/v1/users/me/donations.
func (h *DonationHandler) UserDonations(c *gin.Context) {
	summary, history, err := h.analyticsService.UserSummary(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{
		"summary":   summary,
		"donations": history,
	}, "")
}
