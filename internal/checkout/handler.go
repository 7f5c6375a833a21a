package checkout

import (
	"errors"
	"net/http"

	"biteaffair/internal/middleware"
	"biteaffair/internal/otp"
	"biteaffair/internal/storefront"
	"biteaffair/internal/validation"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validatorv10.Validate
}

func NewHandler(service *Service, validate *validatorv10.Validate) *Handler {
	return &Handler{service: service, validate: validate}
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,otpcode"`
}

type confirmRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone" validate:"required,phone10"`
	Address string `json:"address" validate:"required,min=5"`
	Pincode string `json:"pincode" validate:"required,pincode"`
}

//
// --------------------------------------------------
// GET /api/checkout/totals
// --------------------------------------------------
//

func (h *Handler) Totals() gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := h.service.Totals(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			storefront.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

//
// --------------------------------------------------
// POST /api/checkout/otp/send
// POST /api/checkout/otp/resend
// --------------------------------------------------
//

func (h *Handler) SendOTP() gin.HandlerFunc {
	return h.issue(false)
}

func (h *Handler) ResendOTP() gin.HandlerFunc {
	return h.issue(true)
}

func (h *Handler) issue(resend bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req phoneRequest
		if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
			return
		}

		send := h.service.SendOTP
		if resend {
			send = h.service.ResendOTP
		}

		res, err := send(c.Request.Context(), req.Phone)
		if err != nil {
			respondOTP(c, res, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

//
// --------------------------------------------------
// POST /api/checkout/otp/verify
// --------------------------------------------------
//

func (h *Handler) VerifyOTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
			return
		}

		res, err := h.service.VerifyOTP(c.Request.Context(), middleware.SessionID(c), req.Phone, req.OTP)
		if err != nil {
			respondOTP(c, res, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

//
// --------------------------------------------------
// POST /api/checkout/confirm
// --------------------------------------------------
//

func (h *Handler) Confirm() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req confirmRequest
		if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
			return
		}

		conf, err := h.service.Confirm(c.Request.Context(), middleware.SessionID(c), storefront.Customer{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Pincode: req.Pincode,
		})
		if errors.Is(err, otp.ErrInvalidPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": otp.MsgBadPhone})
			return
		}
		if err != nil {
			storefront.RespondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, conf)
	}
}

// respondOTP keeps the {success, message} shape on every OTP failure so the
// page can show the message inline.
func respondOTP(c *gin.Context, res otp.Result, err error) {
	var cooldown *otp.CooldownError

	switch {
	case errors.As(err, &cooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":     false,
			"message":     res.Message,
			"retry_after": cooldown.Seconds(),
		})

	case errors.Is(err, otp.ErrTooMany):
		c.JSON(http.StatusTooManyRequests, res)

	case errors.Is(err, otp.ErrInvalidPhone),
		errors.Is(err, otp.ErrInvalidCode),
		errors.Is(err, otp.ErrCodeNotFound),
		errors.Is(err, otp.ErrExpired),
		errors.Is(err, otp.ErrMismatch):
		c.JSON(http.StatusBadRequest, res)

	case errors.Is(err, otp.ErrSendFailed):
		c.JSON(http.StatusBadGateway, res)

	case errors.Is(err, storefront.ErrMissingSession):
		storefront.RespondError(c, err)

	default:
		c.JSON(http.StatusServiceUnavailable, res)
	}
}
