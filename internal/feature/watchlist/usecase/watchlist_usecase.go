// Package usecase implements validation and orchestration for the watchlist feature.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// WatchlistUsecase validates and normalizes input, then delegates to the Database
// entry points. Inputs are always checked before any database call.
type WatchlistUsecase struct {
	db     Database
	tables []string
}

// NewWatchlistUsecase creates a WatchlistUsecase. tables lists the tables
// reported by CheckTablesAccess.
func NewWatchlistUsecase(db Database, tables []string) *WatchlistUsecase {
	return &WatchlistUsecase{db: db, tables: tables}
}

// IsConfigured reports whether the underlying database has connection settings.
func (u *WatchlistUsecase) IsConfigured() bool {
	return u.db.IsConfigured()
}

// 以下のヘルパーは結果をクロージャ外へ渡す。エラー時は結果を読まないので、
// キャンセルで呼び出し側が先に戻ってもワーカー側の書き込みと競合しない。

func read[T any](ctx context.Context, db Database, action string, fn func(r WatchlistReader) (T, error)) (T, error) {
	var zero, out T
	if !db.IsConfigured() {
		return zero, ErrNotConfigured
	}
	err := db.Read(ctx, func(r WatchlistReader) error {
		v, err := fn(r)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return zero, fail(action, err)
	}
	return out, nil
}

func write[T any](ctx context.Context, db Database, action string, fn func(w WatchlistWriter) (T, error)) (T, error) {
	var zero, out T
	if !db.IsConfigured() {
		return zero, ErrNotConfigured
	}
	err := db.Write(ctx, func(w WatchlistWriter) error {
		v, err := fn(w)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return zero, fail(action, err)
	}
	return out, nil
}

func transaction[T any](ctx context.Context, db Database, action string, fn func(r WatchlistReader, w WatchlistWriter) (T, error)) (T, error) {
	var zero, out T
	if !db.IsConfigured() {
		return zero, ErrNotConfigured
	}
	err := db.Transaction(ctx, func(r WatchlistReader, w WatchlistWriter) error {
		v, err := fn(r, w)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return zero, fail(action, err)
	}
	return out, nil
}

func deleted(n int64, err error) (bool, error) {
	return n > 0, err
}

// getOrCreateTag must run inside a transaction: the insert is a no-op on conflict
// and the read-back then fetches the row another caller created.
func getOrCreateTag(r WatchlistReader, w WatchlistWriter, name string) (*entity.Tag, error) {
	tag, err := w.InsertTagIfAbsent(name)
	if err != nil || tag != nil {
		return tag, err
	}
	tag, err = r.GetTagByName(name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("%w: failed to get or create tag %q", ErrInvariantViolation, name)
	}
	return tag, nil
}

func getOrCreateStockTag(r WatchlistReader, w WatchlistWriter, stockID, tagID int64) (*entity.StockTag, error) {
	link, err := w.InsertStockTagIfAbsent(stockID, tagID)
	if err != nil || link != nil {
		return link, err
	}
	link, err = r.GetStockTag(stockID, tagID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("%w: failed to get or create stock tag (%d, %d)", ErrInvariantViolation, stockID, tagID)
	}
	return link, nil
}

func getOrCreateWatchlistTag(r WatchlistReader, w WatchlistWriter, watchlistID, tagID int64) (*entity.WatchlistTag, error) {
	link, err := w.InsertWatchlistTagIfAbsent(watchlistID, tagID)
	if err != nil || link != nil {
		return link, err
	}
	link, err = r.GetWatchlistTag(watchlistID, tagID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("%w: failed to get or create watchlist tag (%d, %d)", ErrInvariantViolation, watchlistID, tagID)
	}
	return link, nil
}

func getOrCreateWatchlistStock(r WatchlistReader, w WatchlistWriter, watchlistID, stockID int64) (*entity.WatchlistStock, error) {
	link, err := w.InsertWatchlistStockIfAbsent(watchlistID, stockID)
	if err != nil || link != nil {
		return link, err
	}
	link, err = r.GetWatchlistStock(watchlistID, stockID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("%w: failed to get or create watchlist stock (%d, %d)", ErrInvariantViolation, watchlistID, stockID)
	}
	return link, nil
}

func requireStock(r WatchlistReader, stockID int64) error {
	stock, err := r.GetStockByID(stockID)
	if err != nil {
		return err
	}
	if stock == nil {
		return invalid("stock_id", "Stock '%d' does not exist", stockID)
	}
	return nil
}

func requireWatchlist(r WatchlistReader, watchlistID int64) error {
	list, err := r.GetWatchlistByID(watchlistID)
	if err != nil {
		return err
	}
	if list == nil {
		return invalid("watchlist_id", "Watchlist '%d' does not exist", watchlistID)
	}
	return nil
}

// CheckConnection never fails; it reports false when the database is unusable.
func (u *WatchlistUsecase) CheckConnection(ctx context.Context) bool {
	return u.db.CheckConnection(ctx)
}

// CheckTablesAccess reports readability of every known table.
func (u *WatchlistUsecase) CheckTablesAccess(ctx context.Context) []entity.TableAccessStatus {
	statuses := make([]entity.TableAccessStatus, 0, len(u.tables))
	for _, table := range u.tables {
		status := entity.TableAccessStatus{TableName: table, Accessible: true}
		if err := u.db.TableAccess(ctx, table); err != nil {
			msg := err.Error()
			status.Accessible = false
			status.Error = &msg
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// GetLayout returns the stored dashboard layout, or nil if the row is missing.
func (u *WatchlistUsecase) GetLayout(ctx context.Context) (*entity.UserLayout, error) {
	return read(ctx, u.db, "get layout", func(r WatchlistReader) (*entity.UserLayout, error) {
		return r.GetLayout()
	})
}

// UpdateLayout replaces the layout document. layoutData must be valid JSON.
func (u *WatchlistUsecase) UpdateLayout(ctx context.Context, layoutData string) (*entity.UserLayout, error) {
	if !json.Valid([]byte(layoutData)) {
		return nil, invalid("layout_data", "layout_data must be valid JSON")
	}
	return write(ctx, u.db, "update layout", func(w WatchlistWriter) (*entity.UserLayout, error) {
		return w.UpdateLayout(layoutData)
	})
}
