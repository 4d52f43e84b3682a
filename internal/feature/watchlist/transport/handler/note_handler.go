package handler

import (
	"net/http"

	"stock_watchlist/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

func (h *WatchlistHandler) ListNotes(c *gin.Context) {
	stockID, ok := pathID(c, "stockId")
	if !ok {
		return
	}
	notes, err := h.uc.ListNotesForStock(c.Request.Context(), stockID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *WatchlistHandler) CreateNote(c *gin.Context) {
	stockID, ok := pathID(c, "stockId")
	if !ok {
		return
	}
	var req dto.CreateNoteReq
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.uc.CreateStockNote(c.Request.Context(), stockID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *WatchlistHandler) DeleteNote(c *gin.Context) {
	stockID, ok := pathID(c, "stockId")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteStockNote(c.Request.Context(), stockID, noteID)
	respondDeleted(c, deleted, err, "Note '%d' not found for stock '%d'", noteID, stockID)
}

// GetLayout は保存済みのレイアウトを返します。行がなければ空オブジェクトを返します。
func (h *WatchlistHandler) GetLayout(c *gin.Context) {
	layout, err := h.uc.GetLayout(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if layout == nil {
		c.JSON(http.StatusOK, gin.H{"layout_data": "{}"})
		return
	}
	c.JSON(http.StatusOK, layout)
}

func (h *WatchlistHandler) UpdateLayout(c *gin.Context) {
	var req dto.LayoutReq
	if !bindJSON(c, &req) {
		return
	}
	data, err := req.Data()
	if err != nil {
		badRequest(c, "layout_data must be valid JSON")
		return
	}
	layout, err := h.uc.UpdateLayout(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	if layout == nil {
		notFound(c, "layout row is missing; run migrations")
		return
	}
	c.JSON(http.StatusOK, layout)
}
