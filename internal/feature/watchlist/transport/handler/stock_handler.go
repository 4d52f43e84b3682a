package handler

import (
	"net/http"

	"stock_watchlist/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// ListStocks は GET /api/watchlist/stocks?limit=200 を処理します。
func (h *WatchlistHandler) ListStocks(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	stocks, err := h.uc.ListStocks(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// CreateStock は銘柄を作成し 201 を返します。
func (h *WatchlistHandler) CreateStock(c *gin.Context) {
	var req dto.CreateStockReq
	if !bindJSON(c, &req) {
		return
	}
	stock, err := h.uc.CreateStock(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stock)
}

func (h *WatchlistHandler) GetStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stock, err := h.uc.GetStockByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if stock == nil {
		notFound(c, "Stock '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetStockBySymbol は GET /api/watchlist/stocks/by-symbol/:symbol?exchange=NSE を処理します。
func (h *WatchlistHandler) GetStockBySymbol(c *gin.Context) {
	symbol := c.Param("symbol")
	exchange := c.DefaultQuery("exchange", dto.DefaultExchange)
	stock, err := h.uc.GetStockBySymbol(c.Request.Context(), symbol, exchange)
	if err != nil {
		respondError(c, err)
		return
	}
	if stock == nil {
		notFound(c, "Stock '%s' not found on %s", symbol, exchange)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// UpdateStock はボディに存在するキーだけを更新します。
func (h *WatchlistHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	in, err := patch.StockInput()
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	stock, err := h.uc.UpdateStock(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if stock == nil {
		notFound(c, "Stock '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *WatchlistHandler) DeleteStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteStock(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "Stock '%d' not found", id)
}

func (h *WatchlistHandler) ListStockTags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tags, err := h.uc.ListTagsForStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// AddStockTag はタグ名で取得または作成したタグを銘柄に付けます。
func (h *WatchlistHandler) AddStockTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TagNameReq
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.uc.AddTagToStock(c.Request.Context(), id, req.TagName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *WatchlistHandler) DeleteStockTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteStockTag(c.Request.Context(), id, tagID)
	respondDeleted(c, deleted, err, "Tag '%d' is not attached to stock '%d'", tagID, id)
}
