package handler

import (
	"net/http"

	"stock_watchlist/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

func (h *WatchlistHandler) ListTags(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	tags, err := h.uc.ListTags(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *WatchlistHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagReq
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.uc.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *WatchlistHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.uc.GetTagByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if tag == nil {
		notFound(c, "Tag '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *WatchlistHandler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	in, err := patch.TagInput()
	if err != nil {
		badRequest(c, "%v", err)
		return
	}
	tag, err := h.uc.UpdateTag(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if tag == nil {
		notFound(c, "Tag '%d' not found", id)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *WatchlistHandler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteTag(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "Tag '%d' not found", id)
}

// ListStocksForTag はタグIDからタグ名を引き、そのタグが付いた銘柄を返します。
func (h *WatchlistHandler) ListStocksForTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	tag, err := h.uc.GetTagByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if tag == nil {
		notFound(c, "Tag '%d' not found", id)
		return
	}
	stocks, err := h.uc.ListStocksByTag(ctx, tag.Name, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}
