package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/api"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListTiers godoc
// @Summary      List pricing tiers
// @Description  Returns the active, publicly visible pricing tiers.
// @Tags         catalog
// @Produce      json
// @Success      200 {array} PricingTier
// @Failure      500 {object} gin.H
// @Router       /tiers [get]
func (h *Handler) ListTiers(c *gin.Context) {
	tiers, err := h.repo.ListTiers(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pricing tiers"})
		return
	}
	c.JSON(http.StatusOK, tiers)
}

// GetTier godoc
// @Summary      Get a pricing tier
// @Tags         catalog
// @Produce      json
// @Param        tierID path int true "Tier ID"
// @Success      200 {object} PricingTier
// @Failure      404 {object} gin.H
// @Router       /tiers/{tierID} [get]
func (h *Handler) GetTier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tierID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tier id"})
		return
	}

	tier, err := h.repo.GetTierByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}
	if tier.IsHidden {
		// Hidden tiers are addressed through the membership flow with a
		// signup code, never listed or fetched directly.
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}

	c.JSON(http.StatusOK, tier)
}

// CreateTier godoc
// @Summary      Create a pricing tier
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreateTierRequest true "Tier definition"
// @Success      201 {object} PricingTier
// @Failure      400 {object} gin.H
// @Router       /admin/tiers [post]
func (h *Handler) CreateTier(c *gin.Context) {
	var req CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	candidate := PricingTier{
		Name:              req.Name,
		MonthlyPriceCents: req.MonthlyPriceCents,
		YearlyPriceCents:  req.YearlyPriceCents,
		OneTimePriceCents: req.OneTimePriceCents,
		IsHidden:          req.IsHidden,
		SignupCode:        req.SignupCode,
	}
	if err := ValidateTiers([]PricingTier{candidate}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier, err := h.repo.CreateTier(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Failed to create pricing tier %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tier"})
		return
	}

	logger.Infof("Pricing tier created: %s (id %d)", tier.Name, tier.ID)
	c.JSON(http.StatusCreated, tier)
}

// CreateDiscount godoc
// @Summary      Create a discount code
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreateDiscountRequest true "Discount definition"
// @Success      201 {object} DiscountCode
// @Failure      400 {object} gin.H
// @Failure      409 {object} gin.H
// @Router       /admin/discounts [post]
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidate := DiscountCode{
		Code:          req.Code,
		DiscountType:  DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
	}
	if err := ValidateDiscount(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.repo.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrCodeTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "discount code already exists"})
			return
		}
		logger.Errorf("Failed to create discount %q: %v", req.Code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create discount"})
		return
	}

	c.JSON(http.StatusCreated, d)
}

// ListDiscounts godoc
// @Summary      List discount codes
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} DiscountCode
// @Router       /admin/discounts [get]
func (h *Handler) ListDiscounts(c *gin.Context) {
	codes, err := h.repo.ListDiscounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discounts"})
		return
	}
	c.JSON(http.StatusOK, codes)
}

// DeactivateDiscount godoc
// @Summary      Deactivate a discount code
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        discountID path int true "Discount ID"
// @Success      200 {object} gin.H
// @Failure      404 {object} gin.H
// @Router       /admin/discounts/{discountID}/deactivate [post]
func (h *Handler) DeactivateDiscount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("discountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount id"})
		return
	}

	if err := h.repo.DeactivateDiscount(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate discount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "discount deactivated"})
}
