package handler

import (
	"net/http"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// itemKey はウォッチリストIDと銘柄IDのパスパラメータを読み取ります。
func itemKey(c *gin.Context) (watchlistID, stockID int64, ok bool) {
	if watchlistID, ok = pathID(c, "watchlistId"); !ok {
		return 0, 0, false
	}
	if stockID, ok = pathID(c, "stockId"); !ok {
		return 0, 0, false
	}
	return watchlistID, stockID, true
}

func (h *WatchlistHandler) CreateItem(c *gin.Context) {
	var req dto.CreateWatchlistStockReq
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.uc.CreateWatchlistStock(c.Request.Context(), entity.CreateWatchlistStockInput{
		WatchlistID: req.WatchlistID,
		StockID:     req.StockID,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *WatchlistHandler) GetItem(c *gin.Context) {
	watchlistID, stockID, ok := itemKey(c)
	if !ok {
		return
	}
	item, err := h.uc.GetWatchlistStock(c.Request.Context(), watchlistID, stockID)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		notFound(c, "Stock '%d' is not in watchlist '%d'", stockID, watchlistID)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WatchlistHandler) UpdateItem(c *gin.Context) {
	watchlistID, stockID, ok := itemKey(c)
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	in, err := patch.WatchlistStockInput()
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	item, err := h.uc.UpdateWatchlistStock(c.Request.Context(), watchlistID, stockID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		notFound(c, "Stock '%d' is not in watchlist '%d'", stockID, watchlistID)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *WatchlistHandler) DeleteItem(c *gin.Context) {
	watchlistID, stockID, ok := itemKey(c)
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteWatchlistStock(c.Request.Context(), watchlistID, stockID)
	respondDeleted(c, deleted, err, "Stock '%d' is not in watchlist '%d'", stockID, watchlistID)
}
