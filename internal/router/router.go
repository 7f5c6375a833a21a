package router

import (
	"net/http"
	"time"

	"biteaffair/internal/auth"
	"biteaffair/internal/checkout"
	"biteaffair/internal/menu"
	"biteaffair/internal/metrics"
	"biteaffair/internal/middleware"
	"biteaffair/internal/storefront"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Menu       *menu.Handler
	Storefront *storefront.Handler
	Checkout   *checkout.Handler
}

type Options struct {
	ServiceName string
	CORSOrigins []string
	Metrics     bool
}

func NewRouter(tokens *auth.SessionTokens, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader},
			ExposeHeaders:    []string{middleware.SessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if opts.Metrics {
		r.Use(metrics.PrometheusMiddleware(opts.ServiceName))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(tokens))

	// ───────────────────────── BOOKING ─────────────────────────
	bookingGroup := api.Group("/booking")
	{
		bookingGroup.GET("/options", h.Storefront.BookingOptions)
		bookingGroup.GET("", h.Storefront.GetBooking)
		bookingGroup.DELETE("", h.Storefront.ResetBooking)
		bookingGroup.POST("/location", h.Storefront.SelectLocation)
		bookingGroup.POST("/occasion", h.Storefront.SelectOccasion)
		bookingGroup.POST("/schedule", h.Storefront.SetSchedule)
		bookingGroup.POST("/meal", h.Storefront.SelectMeal)
		bookingGroup.POST("/back", h.Storefront.Back)
	}

	// ───────────────────────── MENU ─────────────────────────
	menus := api.Group("/menu")
	{
		menus.GET("", h.Menu.List)
		menus.GET("/modes", h.Menu.Modes)
		menus.GET("/addons", h.Menu.Addons)
		menus.POST("/veg-package/validate", h.Menu.ValidatePackage)
	}

	// ───────────────────────── GUESTS ─────────────────────────
	guestGroup := api.Group("/guests")
	{
		guestGroup.GET("", h.Storefront.GetGuests)
		guestGroup.PUT("/:bucket", h.Storefront.SetGuests)
		guestGroup.POST("/reconcile", h.Storefront.Reconcile)
	}

	// ───────────────────────── CART ─────────────────────────
	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", h.Storefront.GetCart)
		cartGroup.DELETE("", h.Storefront.ClearCart)
		cartGroup.POST("/items", h.Storefront.AddItem)
		cartGroup.PATCH("/items/:id", h.Storefront.UpdateItem)
		cartGroup.DELETE("/items/:id", h.Storefront.RemoveItem)
		cartGroup.POST("/veg-package", h.Storefront.AddVegPackage)
		cartGroup.POST("/packages", h.Storefront.AddPackage)
		cartGroup.POST("/addons", h.Storefront.AddAddon)
	}

	// ───────────────────────── CHECKOUT ─────────────────────────
	checkoutGroup := api.Group("/checkout")
	{
		checkoutGroup.GET("/totals", h.Checkout.Totals())
		checkoutGroup.POST("/otp/send", h.Checkout.SendOTP())
		checkoutGroup.POST("/otp/resend", h.Checkout.ResendOTP())
		checkoutGroup.POST("/otp/verify", h.Checkout.VerifyOTP())
		checkoutGroup.POST("/confirm", h.Checkout.Confirm())
	}

	api.GET("/orders/:id", h.Storefront.GetOrder)

	return r
}
