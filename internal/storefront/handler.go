package storefront

import (
	"errors"
	"net/http"

	"biteaffair/internal/booking"
	"biteaffair/internal/cart"
	"biteaffair/internal/guests"
	"biteaffair/internal/menu"
	"biteaffair/internal/middleware"
	"biteaffair/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type Handler struct {
	store    *Store
	validate *validatorv10.Validate
}

func NewHandler(store *Store, validate *validatorv10.Validate) *Handler {
	return &Handler{store: store, validate: validate}
}

// GuestCounter adapts the store for handlers that only need the guest count.
func (h *Handler) GuestCounter() menu.GuestCounter {
	return func(c *gin.Context) (guests.Count, error) {
		return h.store.Guests(c.Request.Context(), middleware.SessionID(c))
	}
}

// ==================================================
// BOOKING
// ==================================================

// GET /api/booking/options
func (h *Handler) BookingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"locations":  booking.Locations,
		"occasions":  booking.Occasions,
		"meal_types": booking.MealTypes,
	})
}

// GET /api/booking
func (h *Handler) GetBooking(c *gin.Context) {
	state, err := h.store.Booking(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type locationRequest struct {
	Location string `json:"location" validate:"required"`
}

// POST /api/booking/location
func (h *Handler) SelectLocation(c *gin.Context) {
	var req locationRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	h.wizard(c, func(w *booking.Wizard) error {
		return w.SelectLocation(req.Location)
	})
}

type occasionRequest struct {
	Occasion string `json:"occasion" validate:"required"`
}

// POST /api/booking/occasion
func (h *Handler) SelectOccasion(c *gin.Context) {
	var req occasionRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	h.wizard(c, func(w *booking.Wizard) error {
		return w.SelectOccasion(req.Occasion)
	})
}

type scheduleRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"`
}

// POST /api/booking/schedule
func (h *Handler) SetSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	h.wizard(c, func(w *booking.Wizard) error {
		return w.SetSchedule(req.Date, req.StartTime, req.EndTime)
	})
}

type mealRequest struct {
	MealType string `json:"meal_type" validate:"required"`
	Veg      int    `json:"veg" validate:"gte=0"`
	NonVeg   int    `json:"non_veg" validate:"gte=0"`
	Jain     int    `json:"jain" validate:"gte=0"`
}

// POST /api/booking/meal
func (h *Handler) SelectMeal(c *gin.Context) {
	var req mealRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	counts := guests.Count{Veg: req.Veg, NonVeg: req.NonVeg, Jain: req.Jain}
	h.wizard(c, func(w *booking.Wizard) error {
		_, err := w.SelectMeal(req.MealType, counts)
		return err
	})
}

// POST /api/booking/back
func (h *Handler) Back(c *gin.Context) {
	h.wizard(c, func(w *booking.Wizard) error {
		return w.Back()
	})
}

// DELETE /api/booking
func (h *Handler) ResetBooking(c *gin.Context) {
	state, err := h.store.ResetBooking(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) wizard(c *gin.Context, action func(w *booking.Wizard) error) {
	state, err := h.store.UpdateWizard(c.Request.Context(), middleware.SessionID(c), action)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ==================================================
// GUESTS
// ==================================================

// GET /api/guests
func (h *Handler) GetGuests(c *gin.Context) {
	g, err := h.store.Guests(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guest_count": g, "total": g.Total(), "floor": guests.Floor})
}

type guestRequest struct {
	Value int `json:"value"`
}

// PUT /api/guests/:bucket
func (h *Handler) SetGuests(c *gin.Context) {
	bucket, err := guests.ParseBucket(c.Param("bucket"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bucket must be one of veg, nonVeg, jain"})
		return
	}

	var req guestRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	update, err := h.store.SetGuests(c.Request.Context(), middleware.SessionID(c), bucket, req.Value)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

// POST /api/guests/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	res, err := h.store.Reconcile(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"updated":     res.Updated,
		"deferred":    res.Deferred > 0,
		"deferred_ms": res.Deferred.Milliseconds(),
	})
}

// ==================================================
// CART
// ==================================================

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.store.Cart(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addItemRequest struct {
	ItemID    string `json:"item_id" validate:"required"`
	Mode      string `json:"mode" validate:"required"`
	Tier      string `json:"tier"`
	Customize bool   `json:"customize"`
}

// POST /api/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	mode, err := menu.ParseMode(req.Mode)
	if err != nil {
		RespondError(c, err)
		return
	}

	view, err := h.store.AddCatalogItem(c.Request.Context(), middleware.SessionID(c), AddItem{
		ItemID:    req.ItemID,
		Mode:      mode,
		Tier:      menu.ParseTier(req.Tier),
		Customize: req.Customize,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type vegPackageRequest struct {
	Tier      string         `json:"tier"`
	Selection menu.Selection `json:"selection" validate:"required"`
}

// POST /api/cart/veg-package
func (h *Handler) AddVegPackage(c *gin.Context) {
	var req vegPackageRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	view, err := h.store.AddVegPackage(c.Request.Context(), middleware.SessionID(c), menu.ParseTier(req.Tier), req.Selection)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type packageRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Pax    int    `json:"pax" validate:"gte=0"`
}

// POST /api/cart/packages
func (h *Handler) AddPackage(c *gin.Context) {
	var req packageRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	view, err := h.store.AddFixedPackage(c.Request.Context(), middleware.SessionID(c), req.ItemID, req.Pax)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type addonRequest struct {
	AddonID string `json:"addon_id" validate:"required"`
}

// POST /api/cart/addons
func (h *Handler) AddAddon(c *gin.Context) {
	var req addonRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	view, err := h.store.AddAddon(c.Request.Context(), middleware.SessionID(c), req.AddonID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// PATCH /api/cart/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	var req quantityRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	view, err := h.store.StepLine(c.Request.Context(), middleware.SessionID(c), c.Param("id"), req.Quantity)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	view, err := h.store.RemoveLine(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	view, err := h.store.ClearCart(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ==================================================
// ORDERS
// ==================================================

// GET /api/orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.store.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// RespondError maps storefront errors onto HTTP responses; catalog errors
// fall through to menu.RespondError.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrWrongStep),
		errors.Is(err, booking.ErrBackAtFirstStep),
		errors.Is(err, booking.ErrLastStep),
		errors.Is(err, booking.ErrStepIncomplete):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrLocationRequired),
		errors.Is(err, booking.ErrUnknownOccasion),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrInvalidTime),
		errors.Is(err, booking.ErrUnknownMealType),
		errors.Is(err, guests.ErrUnknownBucket),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingID),
		errors.Is(err, ErrPackageDish),
		errors.Is(err, ErrWrongMode),
		errors.Is(err, ErrNotAPackage),
		errors.Is(err, ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, ErrPhoneNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	default:
		menu.RespondError(c, err)
	}
}
