package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// WatchlistReader は副作用のない問い合わせだけを公開します。
// Lookups return (nil, nil) when no row matches.
type WatchlistReader interface {
	GetStockByID(id int64) (*entity.Stock, error)
	GetStockBySymbol(symbol, exchange string) (*entity.Stock, error)
	GetStockByInstrumentToken(token int64) (*entity.Stock, error)
	ListStocks(limit int) ([]entity.Stock, error)
	ListStocksByTagName(tagName string, limit int) ([]entity.Stock, error)

	GetWatchlistByID(id int64) (*entity.Watchlist, error)
	GetWatchlistByName(name string) (*entity.Watchlist, error)
	ListWatchlists(limit int) ([]entity.Watchlist, error)

	GetTagByID(id int64) (*entity.Tag, error)
	GetTagByName(name string) (*entity.Tag, error)
	ListTags(limit int) ([]entity.Tag, error)

	GetStockTag(stockID, tagID int64) (*entity.StockTag, error)
	ListTagsForStock(stockID int64) ([]entity.Tag, error)
	ListStockTagsForStock(stockID int64) ([]entity.StockTag, error)

	GetWatchlistTag(watchlistID, tagID int64) (*entity.WatchlistTag, error)
	ListTagsForWatchlist(watchlistID int64) ([]entity.Tag, error)
	ListWatchlistTagsForWatchlist(watchlistID int64) ([]entity.WatchlistTag, error)

	GetWatchlistStock(watchlistID, stockID int64) (*entity.WatchlistStock, error)
	ListStocksInWatchlist(watchlistID int64) ([]entity.Stock, error)
	ListWatchlistStocksForWatchlist(watchlistID int64) ([]entity.WatchlistStock, error)

	ListNotesForStock(stockID int64) ([]entity.StockNote, error)
	GetLayout() (*entity.UserLayout, error)
}

// WatchlistWriter は挿入・更新・削除だけを公開します。
// Updates return (nil, nil) when the row does not exist, deletes return the affected row count,
// and the *IfAbsent inserts return (nil, nil) when a uniqueness conflict made them a no-op.
type WatchlistWriter interface {
	CreateStock(in entity.CreateStockInput) (*entity.Stock, error)
	UpdateStock(id int64, in entity.UpdateStockInput) (*entity.Stock, error)
	DeleteStock(id int64) (int64, error)

	CreateWatchlist(in entity.CreateWatchlistInput) (*entity.Watchlist, error)
	UpdateWatchlist(id int64, in entity.UpdateWatchlistInput) (*entity.Watchlist, error)
	DeleteWatchlist(id int64) (int64, error)

	CreateTag(name string) (*entity.Tag, error)
	InsertTagIfAbsent(name string) (*entity.Tag, error)
	UpdateTag(id int64, in entity.UpdateTagInput) (*entity.Tag, error)
	DeleteTag(id int64) (int64, error)

	InsertStockTagIfAbsent(stockID, tagID int64) (*entity.StockTag, error)
	DeleteStockTag(stockID, tagID int64) (int64, error)
	DeleteAllStockTags(stockID int64) (int64, error)

	InsertWatchlistTagIfAbsent(watchlistID, tagID int64) (*entity.WatchlistTag, error)
	DeleteWatchlistTag(watchlistID, tagID int64) (int64, error)

	CreateWatchlistStock(in entity.CreateWatchlistStockInput) (*entity.WatchlistStock, error)
	InsertWatchlistStockIfAbsent(watchlistID, stockID int64) (*entity.WatchlistStock, error)
	UpdateWatchlistStock(watchlistID, stockID int64, in entity.UpdateWatchlistStockInput) (*entity.WatchlistStock, error)
	DeleteWatchlistStock(watchlistID, stockID int64) (int64, error)

	CreateStockNote(stockID int64, content string) (*entity.StockNote, error)
	DeleteStockNote(stockID, noteID int64) (int64, error)
	UpdateLayout(layoutData string) (*entity.UserLayout, error)
}

// Database is the unit-of-work entry point the usecase runs against.
// *db.Handler[WatchlistReader, WatchlistWriter] satisfies it.
type Database interface {
	IsConfigured() bool
	Read(ctx context.Context, fn func(r WatchlistReader) error) error
	Write(ctx context.Context, fn func(w WatchlistWriter) error) error
	Transaction(ctx context.Context, fn func(r WatchlistReader, w WatchlistWriter) error) error
	CheckConnection(ctx context.Context) bool
	TableAccess(ctx context.Context, table string) error
}
