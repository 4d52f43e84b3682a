// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/transport/http/dto"
	"stock_watchlist/internal/feature/watchlist/usecase"

	"github.com/gin-gonic/gin"
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	IsConfigured() bool
	CheckConnection(ctx context.Context) bool
	CheckTablesAccess(ctx context.Context) []entity.TableAccessStatus

	CreateStock(ctx context.Context, in entity.CreateStockInput) (*entity.Stock, error)
	GetStockByID(ctx context.Context, id int64) (*entity.Stock, error)
	GetStockBySymbol(ctx context.Context, symbol, exchange string) (*entity.Stock, error)
	ListStocks(ctx context.Context, limit int) ([]entity.Stock, error)
	ListStocksByTag(ctx context.Context, tagName string, limit int) ([]entity.Stock, error)
	UpdateStock(ctx context.Context, id int64, in entity.UpdateStockInput) (*entity.Stock, error)
	DeleteStock(ctx context.Context, id int64) (bool, error)

	CreateWatchlist(ctx context.Context, in entity.CreateWatchlistInput) (*entity.Watchlist, error)
	GetWatchlistByID(ctx context.Context, id int64) (*entity.Watchlist, error)
	GetWatchlistByName(ctx context.Context, name string) (*entity.Watchlist, error)
	ListWatchlists(ctx context.Context, limit int) ([]entity.Watchlist, error)
	UpdateWatchlist(ctx context.Context, id int64, in entity.UpdateWatchlistInput) (*entity.Watchlist, error)
	DeleteWatchlist(ctx context.Context, id int64) (bool, error)

	CreateTag(ctx context.Context, name string) (*entity.Tag, error)
	GetTagByID(ctx context.Context, id int64) (*entity.Tag, error)
	ListTags(ctx context.Context, limit int) ([]entity.Tag, error)
	UpdateTag(ctx context.Context, id int64, in entity.UpdateTagInput) (*entity.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)

	AddTagToStock(ctx context.Context, stockID int64, tagName string) (*entity.Tag, error)
	ListTagsForStock(ctx context.Context, stockID int64) ([]entity.Tag, error)
	DeleteStockTag(ctx context.Context, stockID, tagID int64) (bool, error)

	AddTagToWatchlist(ctx context.Context, watchlistID int64, tagName string) (*entity.Tag, error)
	ListTagsForWatchlist(ctx context.Context, watchlistID int64) ([]entity.Tag, error)
	DeleteWatchlistTag(ctx context.Context, watchlistID, tagID int64) (bool, error)

	CreateWatchlistStock(ctx context.Context, in entity.CreateWatchlistStockInput) (*entity.WatchlistStock, error)
	GetWatchlistStock(ctx context.Context, watchlistID, stockID int64) (*entity.WatchlistStock, error)
	ListStocksInWatchlist(ctx context.Context, watchlistID int64) ([]entity.Stock, error)
	UpdateWatchlistStock(ctx context.Context, watchlistID, stockID int64, in entity.UpdateWatchlistStockInput) (*entity.WatchlistStock, error)
	DeleteWatchlistStock(ctx context.Context, watchlistID, stockID int64) (bool, error)

	CreateStockNote(ctx context.Context, stockID int64, content string) (*entity.StockNote, error)
	ListNotesForStock(ctx context.Context, stockID int64) ([]entity.StockNote, error)
	DeleteStockNote(ctx context.Context, stockID, noteID int64) (bool, error)

	GetLayout(ctx context.Context) (*entity.UserLayout, error)
	UpdateLayout(ctx context.Context, layoutData string) (*entity.UserLayout, error)
}

// DefaultListLimit is used when a list request has no limit parameter.
const DefaultListLimit = 200

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// Register mounts the watchlist, notes and layout routes under api.
func (h *WatchlistHandler) Register(api *gin.RouterGroup) {
	wl := api.Group("/watchlist")
	{
		wl.GET("/tables", h.Tables)

		wl.GET("/stocks", h.ListStocks)
		wl.POST("/stocks", h.CreateStock)
		wl.GET("/stocks/by-symbol/:symbol", h.GetStockBySymbol)
		wl.GET("/stocks/:id", h.GetStock)
		wl.PATCH("/stocks/:id", h.UpdateStock)
		wl.DELETE("/stocks/:id", h.DeleteStock)
		wl.GET("/stocks/:id/tags", h.ListStockTags)
		wl.POST("/stocks/:id/tags", h.AddStockTag)
		wl.DELETE("/stocks/:id/tags/:tagId", h.DeleteStockTag)

		wl.GET("/tags", h.ListTags)
		wl.POST("/tags", h.CreateTag)
		wl.GET("/tags/:id", h.GetTag)
		wl.PATCH("/tags/:id", h.UpdateTag)
		wl.DELETE("/tags/:id", h.DeleteTag)
		wl.GET("/tags/:id/stocks", h.ListStocksForTag)

		wl.GET("/lists", h.ListWatchlists)
		wl.POST("/lists", h.CreateWatchlist)
		wl.GET("/lists/by-name/:name", h.GetWatchlistByName)
		wl.GET("/lists/:id", h.GetWatchlist)
		wl.PATCH("/lists/:id", h.UpdateWatchlist)
		wl.DELETE("/lists/:id", h.DeleteWatchlist)
		wl.GET("/lists/:id/tags", h.ListWatchlistTags)
		wl.POST("/lists/:id/tags", h.AddWatchlistTag)
		wl.DELETE("/lists/:id/tags/:tagId", h.DeleteWatchlistTag)
		wl.GET("/lists/:id/items", h.ListItems)

		wl.POST("/items", h.CreateItem)
		wl.GET("/items/:watchlistId/:stockId", h.GetItem)
		wl.PATCH("/items/:watchlistId/:stockId", h.UpdateItem)
		wl.DELETE("/items/:watchlistId/:stockId", h.DeleteItem)
	}

	notes := api.Group("/notes/stock/:stockId")
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.DELETE("/:noteId", h.DeleteNote)
	}

	api.GET("/layout", h.GetLayout)
	api.PUT("/layout", h.UpdateLayout)
}

// Tables は接続状態と各テーブルの読み取り可否を返します。未設定でも 200 を返します。
func (h *WatchlistHandler) Tables(c *gin.Context) {
	ctx := c.Request.Context()
	resp := dto.TablesResponse{Configured: h.uc.IsConfigured(), Tables: []entity.TableAccessStatus{}}
	if resp.Configured {
		resp.Connected = h.uc.CheckConnection(ctx)
		resp.Tables = h.uc.CheckTablesAccess(ctx)
	}
	c.JSON(http.StatusOK, resp)
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
func respondError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: verr.Message})
	case errors.Is(err, usecase.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, usecase.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("watchlist request abandoned", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Detail: "request was cancelled"})
	default:
		slog.Error("watchlist request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: err.Error()})
	}
}

func badRequest(c *gin.Context, format string, args ...any) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: fmt.Sprintf(format, args...)})
}

func notFound(c *gin.Context, format string, args ...any) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: fmt.Sprintf(format, args...)})
}

// pathID parses a positive-looking integer path parameter. Range checks are left to the usecase.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "%s must be an integer", name)
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultListLimit)))
	if err != nil {
		badRequest(c, "limit must be an integer")
		return 0, false
	}
	return limit, true
}

// bindJSON は binding タグ付きの構造体にボディをバインドします。
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("watchlist request validation failed", "path", c.FullPath(), "error", err)
		badRequest(c, "invalid request body: %v", err)
		return false
	}
	return true
}

func bindPatch(c *gin.Context) (dto.Patch, bool) {
	var p dto.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "request body must be a JSON object")
		return nil, false
	}
	return p, true
}

func respondDeleted(c *gin.Context, ok bool, err error, format string, args ...any) {
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		notFound(c, format, args...)
		return
	}
	c.JSON(http.StatusOK, dto.DeletedResponse{Deleted: true})
}
