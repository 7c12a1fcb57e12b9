package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "mk-orders/docs"
	"mk-orders/internal/models"
	"mk-orders/internal/service"
	"mk-orders/internal/session"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	svc      service.Order
	sessions *session.Registry
}

type Option func(*Handler)

// WithSessions enables the debounced live edit routes.
func WithSessions(r *session.Registry) Option {
	return func(h *Handler) { h.sessions = r }
}

func NewHandler(s service.Order, opts ...Option) *Handler {
	h := &Handler{svc: s}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type getAllOrdersResponse struct {
	Data []models.Order `json:"data"`
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders", h.GetAllOrders)
		api.POST("/review", h.Review)
		api.GET("/dashboard", h.Dashboard)
		api.GET("/timeline", h.Timeline)

		order := api.Group("/order/:id")
		{
			order.GET("", h.GetOrderById)
			order.GET("/summary", h.GetOrderSummary)
			order.PUT("/items", h.UpdateItems)
			order.PATCH("/lines", h.EditLine)
			order.POST("/flush", h.FlushEdits)
			order.POST("/submit", h.Submit)
			order.POST("/accept", h.Accept)
			order.POST("/process", h.StartProcessing)
			order.POST("/complete", h.Complete)
			order.POST("/ship", h.Ship)
			order.POST("/progress", h.RecordProgress)
			order.DELETE("", h.DeleteOrder)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "page not found"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, statusResponse{Status: "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
