package adapters

import (
	"stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/db"

	"gorm.io/gorm"
)

// Binder attaches the gorm reader and writer to a pinned connection or transaction.
var Binder = db.Binder[usecase.WatchlistReader, usecase.WatchlistWriter]{
	Reader: func(conn *gorm.DB) usecase.WatchlistReader { return NewWatchlistReader(conn) },
	Writer: func(conn *gorm.DB) usecase.WatchlistWriter { return NewWatchlistWriter(conn) },
}

// NewHandler builds the watchlist handler on a shared Database.
func NewHandler(database *db.Database) *db.Handler[usecase.WatchlistReader, usecase.WatchlistWriter] {
	return db.NewHandler(database, "watchlist", Binder)
}
