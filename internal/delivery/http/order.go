package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mk-orders/internal/aggregate"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
)

type createOrderRequest struct {
	Meta  models.Meta     `json:"meta"`
	Items json.RawMessage `json:"items" swaggertype:"object"`
}

type shipRequest struct {
	Carrier     string    `json:"carrier"      binding:"required"`
	ShippedDate time.Time `json:"shipped_date"`
}

type progressRequest struct {
	Key       string `json:"key"       binding:"required"`
	Completed *int   `json:"completed" binding:"required"`
}

type reviewRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

type timelineResponse struct {
	Data []aggregate.TimelineEvent `json:"data"`
}

func orderID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid id")
		return "", false
	}
	return id, true
}

// CreateOrder
// @Summary CreateOrder
// @Description Creates a draft order. Items may be a list of {key, qty} or the nested product map.
// @ID create-order
// @Accept json
// @Produce json
// @Param input body createOrderRequest true "order meta and optional items"
// @Success 201 {object} models.Order
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var items any
	if len(req.Items) > 0 {
		items = req.Items
	}
	order, err := h.svc.CreateDraft(c.Request.Context(), req.Meta, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetAllOrders
// @Summary GetAllOrders
// @Description Lists orders sorted by ship date, optionally filtered by a comma separated status list. sort=table orders by status rank first, sort=finished by completion time.
// @ID get-all-orders
// @Produce json
// @Param status query string false "statuses, e.g. accepted,processing"
// @Param sort query string false "table or finished"
// @Success 200 {object} getAllOrdersResponse
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders [get]
func (h *Handler) GetAllOrders(c *gin.Context) {
	var statuses []models.Status
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, ok := models.ParseStatus(part)
			if !ok {
				newErrorResponse(c, http.StatusBadRequest, "unknown status "+strconv.Quote(part))
				return
			}
			statuses = append(statuses, st)
		}
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), statuses...)
	if err != nil {
		respondError(c, err)
		return
	}

	switch c.Query("sort") {
	case "table":
		aggregate.SortForTable(orders)
	case "finished":
		aggregate.SortFinished(orders)
	}
	c.JSON(http.StatusOK, getAllOrdersResponse{Data: orders})
}

// GetOrderById
// @Summary GetOrderById
// @Description Returns one order
// @ID get-order-by-id
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id} [get]
func (h *Handler) GetOrderById(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrderSummary
// @Summary GetOrderSummary
// @Description Returns item and line totals, variant groups and packing progress of an order
// @ID get-order-summary
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} service.OrderSummary
// @Failure 400,404 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/summary [get]
func (h *Handler) GetOrderSummary(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// UpdateItems
// @Summary UpdateItems
// @Description Replaces the items of a draft. The body is either a list of {key, qty} or the nested product map.
// @ID update-items
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body object true "items"
// @Success 200 {object} models.Order
// @Failure 400,404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/items [put]
func (h *Handler) UpdateItems(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if h.sessions != nil {
		h.sessions.Drop(id)
	}
	order, err := h.svc.UpdateItems(c.Request.Context(), id, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) transition(c *gin.Context, fn func(*gin.Context, string) (models.Order, error)) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := fn(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Submit
// @Summary Submit
// @Description Writes any pending live edits and moves a draft to pending
// @ID submit-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 400,404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		if h.sessions != nil {
			if d, ok := h.sessions.Lookup(id); ok {
				order, err := d.Submit(c.Request.Context())
				if err == nil {
					h.sessions.Drop(id)
				}
				return order, err
			}
		}
		return h.svc.Submit(c.Request.Context(), id)
	})
}

// Accept
// @Summary Accept
// @Description Staff accepts a pending order
// @ID accept-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/accept [post]
func (h *Handler) Accept(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		return h.svc.Accept(c.Request.Context(), id)
	})
}

// StartProcessing
// @Summary StartProcessing
// @Description Moves an accepted order to processing
// @ID process-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/process [post]
func (h *Handler) StartProcessing(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		return h.svc.StartProcessing(c.Request.Context(), id)
	})
}

// Complete
// @Summary Complete
// @Description Marks an accepted or processing order completed
// @ID complete-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		return h.svc.Complete(c.Request.Context(), id)
	})
}

// Ship
// @Summary Ship
// @Description Ships a completed order with the carrier and date entered by staff
// @ID ship-order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body shipRequest true "shipment"
// @Success 200 {object} models.Order
// @Failure 400,404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/ship [post]
func (h *Handler) Ship(c *gin.Context) {
	var req shipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		return h.svc.Ship(c.Request.Context(), id, lifecycle.Shipment{
			Carrier:     req.Carrier,
			ShippedDate: req.ShippedDate,
		})
	})
}

// RecordProgress
// @Summary RecordProgress
// @Description Sets how many units of one line have been packed
// @ID record-progress
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body progressRequest true "line key and packed count"
// @Success 200 {object} models.Order
// @Failure 400,404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/progress [post]
func (h *Handler) RecordProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	h.transition(c, func(c *gin.Context, id string) (models.Order, error) {
		return h.svc.RecordProgress(c.Request.Context(), id, req.Key, *req.Completed)
	})
}

// DeleteOrder
// @Summary DeleteOrder
// @Description Deletes a draft or pending order
// @ID delete-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} statusResponse
// @Failure 404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	if h.sessions != nil {
		h.sessions.Drop(id)
	}
	c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}

// Review
// @Summary Review
// @Description Combines the lines of several orders into one read-only view
// @ID review-orders
// @Accept json
// @Produce json
// @Param input body reviewRequest true "order ids"
// @Success 200 {object} service.Review
// @Failure 400,404 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/review [post]
func (h *Handler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	review, err := h.svc.Review(c.Request.Context(), req.IDs...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Dashboard
// @Summary Dashboard
// @Description Status tiles, average cycle time and item totals
// @ID dashboard
// @Produce json
// @Success 200 {object} aggregate.Dashboard
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Timeline
// @Summary Timeline
// @Description Most recent lifecycle events across all orders, newest first
// @ID timeline
// @Produce json
// @Param limit query int false "max events" default(50)
// @Success 200 {object} timelineResponse
// @Failure 400 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/timeline [get]
func (h *Handler) Timeline(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			newErrorResponse(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	events, err := h.svc.Timeline(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timelineResponse{Data: events})
}
