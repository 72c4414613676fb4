package membership

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/auth"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/email"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/user"
)

type Handler struct {
	service Service
	users   *user.Repository
	email   *email.Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), catalog.NewRepository(db)),
		users:   user.NewRepository(db),
		email:   emailService,
	}
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTierNotVisible):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid signup code for this tier"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the gym owner can manage requests"})
	case errors.Is(err, ErrGymNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
	case errors.Is(err, catalog.ErrTierNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
	case errors.Is(err, ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "membership request not found"})
	case errors.Is(err, ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": "request already decided"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership request operation failed"})
	}
}

// CreateRequest godoc
// @Summary      Request gym membership
// @Description  Quotes the selected tier, cycle and discount, and files a pending request with the quote frozen in.
// @Tags         membership
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreateRequestInput true "Selected tier and discount"
// @Success      201 {object} MembershipRequest
// @Failure      400 {object} gin.H
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /membership-requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := h.service.CreateRequest(c.Request.Context(), userID, input, time.Now())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	if requester, uerr := h.users.FindByID(c.Request.Context(), userID); uerr == nil {
		if serr := h.email.SendMembershipRequestReceived(c.Request.Context(), requester.Email, requester.Name, req.TierName); serr != nil {
			logger.Warnf("Failed to queue request-received email for user %d: %v", userID, serr)
		}
	}

	logger.Infof("Membership request created: user=%d gym=%d tier=%s final=%d", userID, req.GymID, req.TierName, req.FinalPriceCents)
	c.JSON(http.StatusCreated, req)
}

// ListMine godoc
// @Summary      List my membership requests
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} MembershipRequest
// @Router       /membership-requests [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqs, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ListForGym godoc
// @Summary      List a gym's membership requests
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Param        gymID path int true "Gym ID"
// @Success      200 {array} MembershipRequest
// @Failure      403 {object} gin.H
// @Router       /gyms/{gymID}/membership-requests [get]
func (h *Handler) ListForGym(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}

	reqs, err := h.service.ListForGym(c.Request.Context(), gymID, userID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) decide(c *gin.Context, approve bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	publicID := c.Param("requestID")

	var req *MembershipRequest
	var err error
	if approve {
		req, err = h.service.Approve(c.Request.Context(), publicID, userID)
	} else {
		req, err = h.service.Reject(c.Request.Context(), publicID, userID)
	}
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	if requester, uerr := h.users.FindByID(c.Request.Context(), req.UserID); uerr == nil {
		if serr := h.email.SendMembershipRequestDecision(c.Request.Context(), requester.Email, requester.Name, req.TierName, approve); serr != nil {
			logger.Warnf("Failed to queue decision email for request %s: %v", publicID, serr)
		}
	}

	c.JSON(http.StatusOK, req)
}

// Approve godoc
// @Summary      Approve a membership request
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Param        requestID path string true "Request public ID"
// @Success      200 {object} MembershipRequest
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Failure      409 {object} gin.H
// @Router       /membership-requests/{requestID}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject godoc
// @Summary      Reject a membership request
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Param        requestID path string true "Request public ID"
// @Success      200 {object} MembershipRequest
// @Failure      403 {object} gin.H
// @Failure      404 {object} gin.H
// @Failure      409 {object} gin.H
// @Router       /membership-requests/{requestID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, false)
}
