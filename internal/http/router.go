package api

import (
	"database/sql"
	stdhttp "net/http"

	intconfig "travelnest/internal/config"
	h "travelnest/internal/http/handlers"
	"travelnest/internal/http/middleware"
	"travelnest/internal/repositories"
	"travelnest/internal/services"
	"travelnest/internal/utils"

	"github.com/gin-gonic/gin"
)

// NewServices wires repositories and services against one connection pool.
func NewServices(env intconfig.Env, db *sql.DB) h.Handler {
	bookingRepo := repositories.BookingRepository{DB: db}
	invoiceRepo := repositories.InvoiceRepository{DB: db}

	invoices := services.InvoiceService{
		DB:       db,
		Bookings: bookingRepo,
		Invoices: invoiceRepo,
		Renderer: services.DocsService{Dir: env.InvoiceDir, Company: env.Company},
		Links: services.LinkBuilder{
			BaseURL: env.BaseURL,
			Options: utils.WhatsAppOptions{CountryCode: env.WhatsAppCountryCode, BrandName: env.Company.Name},
		},
	}

	return h.Handler{
		Bookings: services.BookingService{BookingRepo: bookingRepo, Invoices: invoices},
		Invoices: invoices,
		Auth: services.AuthService{
			Admins: repositories.AdminRepository{DB: db},
			Tokens: services.NewTokenService(env.JWTSecret, env.JWTTTL),
		},
	}
}

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	return mount(env, NewServices(env, db))
}

func mount(env intconfig.Env, hd h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", utils.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", h.Root)
	if env.InvoiceDir != "" {
		r.Static("/"+services.InvoiceURLPrefix, env.InvoiceDir)
	}

	adminAuth := middleware.AdminAuth(hd.Auth.Tokens, hd.Auth)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/bookings", middleware.RateLimit(env.BookingRatePerMin), hd.CreateBooking)

		admin := api.Group("/admin")
		admin.POST("/create", hd.CreateAdmin)
		admin.POST("/login", hd.Login)

		protected := admin.Group("", adminAuth)
		protected.GET("/bookings", hd.ListBookings)
		protected.GET("/bookings/:id", hd.GetBooking)
		protected.PUT("/bookings/:id", hd.UpdateBookingStatus)
		protected.PUT("/invoices/:id/status", hd.UpdateInvoiceStatus)

		invoice := api.Group("/invoice", adminAuth)
		invoice.POST("/generate/:booking_id", hd.GenerateInvoice)
		invoice.POST("/resend-whatsapp/:booking_id", hd.ResendWhatsApp)
	}

	h.SetRouter(r)
	return r
}
