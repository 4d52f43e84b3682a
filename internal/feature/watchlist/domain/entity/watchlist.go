// Package entity defines the records of the watchlist feature.
package entity

import "time"

// Stock is a tradable instrument the user tracks.
type Stock struct {
	ID              int64     `json:"id"`
	Symbol          string    `json:"symbol"`
	InstrumentToken int64     `json:"instrument_token"`
	CompanyName     string    `json:"company_name"`
	Exchange        string    `json:"exchange"`
	Description     *string   `json:"description"`
	Priority        *int      `json:"priority"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Watchlist is a named group of stocks.
type Watchlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WatchlistStock links a stock into a watchlist, optionally with a note.
type WatchlistStock struct {
	WatchlistID int64     `json:"watchlist_id"`
	StockID     int64     `json:"stock_id"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

type StockTag struct {
	StockID   int64     `json:"stock_id"`
	TagID     int64     `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

type WatchlistTag struct {
	WatchlistID int64     `json:"watchlist_id"`
	TagID       int64     `json:"tag_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockNote is a free-text research note attached to a stock.
type StockNote struct {
	ID        int64     `json:"id"`
	StockID   int64     `json:"stock_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLayout holds the frontend's serialized dashboard layout. There is a single row.
type UserLayout struct {
	ID         int64     `json:"id"`
	LayoutData string    `json:"layout_data"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableAccessStatus reports whether one table is readable with the configured credentials.
type TableAccessStatus struct {
	TableName  string  `json:"table_name"`
	Accessible bool    `json:"accessible"`
	Error      *string `json:"error,omitempty"`
}
