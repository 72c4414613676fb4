package trial

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/auth"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/email"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/metrics"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/user"
)

type Handler struct {
	repo  *Repository
	users *user.Repository
	email *email.Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	return &Handler{
		repo:  NewRepository(db),
		users: user.NewRepository(db),
		email: emailService,
	}
}

// StartTrial godoc
// @Summary      Start the AI trainer trial
// @Description  Opens a 7-day trial for the authenticated user. No payment required.
// @Tags         trial
// @Security     BearerAuth
// @Produce      json
// @Success      201 {object} UserTrial
// @Failure      401 {object} gin.H
// @Router       /ai-trainer/trial [post]
func (h *Handler) StartTrial(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	t := StartTrial(userID, time.Now())
	saved, err := h.repo.Save(c.Request.Context(), &t)
	if err != nil {
		logger.Errorf("Failed to start trial for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start trial"})
		return
	}

	metrics.RecordTrialStarted()

	if u, uerr := h.users.FindByID(c.Request.Context(), userID); uerr == nil && saved.TrialEndsAt != nil {
		if serr := h.email.SendTrialStarted(c.Request.Context(), u.Email, u.Name, *saved.TrialEndsAt); serr != nil {
			logger.Warnf("Failed to queue trial-started email for user %d: %v", userID, serr)
		}
	}

	logger.Infof("Trial started: user=%d ends=%s", userID, saved.TrialEndsAt.Format(time.RFC3339))
	c.JSON(http.StatusCreated, saved)
}

// Subscribe godoc
// @Summary      Subscribe to the AI trainer
// @Description  Activates a paid AI trainer subscription. Allowed from any prior state; the record is overwritten, periods never stack.
// @Tags         trial
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body SubscribeRequest true "Billing cycle"
// @Success      201 {object} UserTrial
// @Failure      400 {object} gin.H
// @Failure      401 {object} gin.H
// @Router       /ai-trainer/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := Subscribe(userID, req.Cycle, time.Now())
	saved, err := h.repo.Save(c.Request.Context(), &t)
	if err != nil {
		logger.Errorf("Failed to subscribe user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}

	metrics.RecordTrialSubscription(req.Cycle)
	c.JSON(http.StatusCreated, saved)
}

// GetStatus godoc
// @Summary      AI trainer access status
// @Description  Returns the user's trial record and whether AI trainer features are currently unlocked.
// @Tags         trial
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} StatusResponse
// @Failure      401 {object} gin.H
// @Router       /ai-trainer/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	t, err := h.repo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrTrialNotFound) {
			c.JSON(http.StatusOK, StatusResponse{Active: false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trial"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Trial: t, Active: IsActive(t, time.Now())})
}
