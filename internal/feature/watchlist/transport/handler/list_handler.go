package handler

import (
	"net/http"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

func (h *WatchlistHandler) ListWatchlists(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	lists, err := h.uc.ListWatchlists(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *WatchlistHandler) CreateWatchlist(c *gin.Context) {
	var req dto.CreateWatchlistReq
	if !bindJSON(c, &req) {
		return
	}
	wl, err := h.uc.CreateWatchlist(c.Request.Context(), entity.CreateWatchlistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wl)
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	wl, err := h.uc.GetWatchlistByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if wl == nil {
		notFound(c, "Watchlist '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WatchlistHandler) GetWatchlistByName(c *gin.Context) {
	name := c.Param("name")
	wl, err := h.uc.GetWatchlistByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if wl == nil {
		notFound(c, "Watchlist '%s' not found", name)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WatchlistHandler) UpdateWatchlist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	in, err := patch.WatchlistInput()
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	wl, err := h.uc.UpdateWatchlist(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if wl == nil {
		notFound(c, "Watchlist '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *WatchlistHandler) DeleteWatchlist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteWatchlist(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "Watchlist '%d' not found", id)
}

func (h *WatchlistHandler) ListWatchlistTags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tags, err := h.uc.ListTagsForWatchlist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *WatchlistHandler) AddWatchlistTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.TagNameReq
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.uc.AddTagToWatchlist(c.Request.Context(), id, req.TagName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *WatchlistHandler) DeleteWatchlistTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteWatchlistTag(c.Request.Context(), id, tagID)
	respondDeleted(c, deleted, err, "Tag '%d' is not attached to watchlist '%d'", tagID, id)
}

// ListItems はウォッチリスト内の銘柄を追加順に返します。
func (h *WatchlistHandler) ListItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stocks, err := h.uc.ListStocksInWatchlist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}
