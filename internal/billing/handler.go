package billing

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/auth"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

type Handler struct {
	service Service
}

// NewHandlerWithService is the only constructor: the billing service is
// shared with the gym package for subscription bootstrap, so the server
// builds it once and hands it in.
func NewHandlerWithService(service Service) *Handler {
	return &Handler{service: service}
}

func gymIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the gym owner can manage the subscription"})
	case errors.Is(err, ErrGymNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
	case errors.Is(err, ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription operation failed"})
	}
}

// ApplyChange godoc
// @Summary      Apply a subscription change
// @Description  Sets the gym's plan and add-ons. Downgrades keep the add-on enabled until the end of the paid period.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID   path int          true "Gym ID"
// @Param        request body ApplyRequest true "Desired plan and add-ons"
// @Success      200 {object} GymSubscription
// @Failure      400 {object} gin.H
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /gyms/{gymID}/subscription [put]
func (h *Handler) ApplyChange(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel := Selection{
		Plan:               Plan(req.Plan),
		AICoachEnabled:     req.AICoachEnabled,
		AICoachMemberCount: req.AICoachMemberCount,
	}

	sub, err := h.service.ApplyChange(c.Request.Context(), gymID, userID, sel, time.Now())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	logger.Infof("Subscription applied: gym=%d plan=%s", gymID, sub.Plan)
	c.JSON(http.StatusOK, sub)
}

// GetSubscription godoc
// @Summary      Get the gym's subscription
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} GymSubscription
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /gyms/{gymID}/subscription [get]
func (h *Handler) GetSubscription(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}

	sub, err := h.service.GetSubscription(c.Request.Context(), gymID, userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CancelSubscription godoc
// @Summary      Cancel the gym's subscription
// @Description  Marks the subscription canceled. The record is kept and paid access runs to the period end.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} GymSubscription
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /gyms/{gymID}/subscription/cancel [post]
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}

	sub, err := h.service.CancelSubscription(c.Request.Context(), gymID, userID, time.Now())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	logger.Infof("Subscription canceled: gym=%d", gymID)
	c.JSON(http.StatusOK, sub)
}

// MonthlyTotal godoc
// @Summary      Current monthly total
// @Description  Prices the subscription from its current enabled flags, including add-ons in their grace period.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} MonthlyTotalResponse
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /gyms/{gymID}/subscription/monthly-total [get]
func (h *Handler) MonthlyTotal(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}

	sub, total, err := h.service.MonthlyTotalFor(c.Request.Context(), gymID, userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthlyTotalResponse{Subscription: sub, MonthlyTotalCents: total})
}
