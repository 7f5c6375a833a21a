package menu

import (
	"errors"
	"net/http"
	"strconv"

	"biteaffair/internal/guests"

	"github.com/gin-gonic/gin"
)

// GuestCounter returns the guest count of the calling session.
type GuestCounter func(c *gin.Context) (guests.Count, error)

type Handler struct {
	service  *Service
	guestsOf GuestCounter
}

func NewHandler(service *Service, guestsOf GuestCounter) *Handler {
	return &Handler{service: service, guestsOf: guestsOf}
}

// --------------------------------------------------
// GET /api/menu
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	mode, err := ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be one of jain, veg, customized, cocktail, packages"})
		return
	}

	category, err := ParseCategoryFilter(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be one of All, Starters, Main Course, Breads, Desserts"})
		return
	}

	pax, _ := strconv.Atoi(c.Query("pax"))
	veg, _ := strconv.ParseBool(c.Query("veg"))
	nonVeg, _ := strconv.ParseBool(c.Query("non_veg"))

	g, err := h.guestsOf(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	req := Request{Mode: mode, Tier: ParseTier(c.Query("tier")), Pax: pax}
	resolved, err := h.service.Resolve(c.Request.Context(), req, g)
	if err != nil {
		RespondError(c, err)
		return
	}

	items := Apply(resolved, Filter{
		Search:   c.Query("q"),
		Category: category,
		Veg:      veg,
		NonVeg:   nonVeg,
		Sort:     ParseSort(c.Query("sort")),
	})

	c.JSON(http.StatusOK, gin.H{
		"mode":        mode,
		"guest_count": g,
		"items":       items,
		"count":       len(items),
	})
}

// --------------------------------------------------
// GET /api/menu/modes
// --------------------------------------------------
func (h *Handler) Modes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modes":       Modes,
		"categories":  []string{"All", "Starters", "Main Course", "Breads", "Desserts"},
		"sort":        []SortOrder{SortNone, SortPriceLow, SortPriceHigh, SortPopular},
		"veg_package": gin.H{"limits": VegPackageLimits, "price_per_guest": VegPackagePricePerGuest},
	})
}

// --------------------------------------------------
// GET /api/menu/addons
// --------------------------------------------------
func (h *Handler) Addons(c *gin.Context) {
	addons, err := h.service.Addons(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addons": addons})
}

type validatePackageRequest struct {
	Tier      string    `json:"tier"`
	Selection Selection `json:"selection"`
}

// --------------------------------------------------
// POST /api/menu/veg-package/validate
// --------------------------------------------------
func (h *Handler) ValidatePackage(c *gin.Context) {
	var req validatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	details, err := h.service.ValidatePackage(c.Request.Context(), ParseTier(req.Tier), req.Selection)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complete": true, "package": details})
}

// RespondError maps menu errors onto HTTP responses.
func RespondError(c *gin.Context, err error) {
	var loadErr *MenuLoadError
	switch {
	case errors.As(err, &loadErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "menu is temporarily unavailable, please retry",
			"mode":      loadErr.Mode,
			"retryable": loadErr.Retryable(),
		})
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrIncompletePackage),
		errors.Is(err, ErrSlotOverLimit),
		errors.Is(err, ErrNotInPackage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "limits": VegPackageLimits})
	case errors.Is(err, ErrUnknownMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
