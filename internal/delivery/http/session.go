package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mk-orders/internal/itemset"
	"mk-orders/internal/models"
)

type editLineRequest struct {
	Key string `json:"key" binding:"required"`
	Qty int    `json:"qty"`
}

type editLineResponse struct {
	Lines   models.Lines    `json:"lines"`
	Summary itemset.Summary `json:"summary"`
	Pending bool            `json:"pending"`
}

// EditLine
// @Summary EditLine
// @Description Live edit of one line quantity. The change is kept in the editing session and saved after a short pause; qty 0 removes the line.
// @ID edit-line
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body editLineRequest true "line key and quantity"
// @Success 202 {object} editLineResponse
// @Failure 400,404,409 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/lines [patch]
func (h *Handler) EditLine(c *gin.Context) {
	if h.sessions == nil {
		newErrorResponse(c, http.StatusNotImplemented, "live editing is disabled")
		return
	}
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req editLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.sessions.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	d.Set(req.Key, req.Qty)
	c.JSON(http.StatusAccepted, editLineResponse{
		Lines:   d.Snapshot(),
		Summary: d.Summary(),
		Pending: d.Dirty(),
	})
}

// FlushEdits
// @Summary FlushEdits
// @Description Saves pending live edits immediately
// @ID flush-edits
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} statusResponse
// @Failure 404,409,503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/order/{id}/flush [post]
func (h *Handler) FlushEdits(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if h.sessions != nil {
		if d, ok := h.sessions.Lookup(id); ok {
			if err := d.Flush(c.Request.Context()); err != nil {
				respondError(c, err)
				return
			}
		}
	}
	c.JSON(http.StatusOK, statusResponse{Status: "saved"})
}
