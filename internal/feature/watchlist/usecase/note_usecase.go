package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// CreateStockNote attaches a note to an existing stock.
func (u *WatchlistUsecase) CreateStockNote(ctx context.Context, stockID int64, content string) (*entity.StockNote, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	text, err := normalizeRequiredText("content", content)
	if err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "create stock note", func(r WatchlistReader, w WatchlistWriter) (*entity.StockNote, error) {
		if err := requireStock(r, stockID); err != nil {
			return nil, err
		}
		return w.CreateStockNote(stockID, text)
	})
}

// ListNotesForStock returns notes newest first.
func (u *WatchlistUsecase) ListNotesForStock(ctx context.Context, stockID int64) ([]entity.StockNote, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list notes for stock", func(r WatchlistReader) ([]entity.StockNote, error) {
		return r.ListNotesForStock(stockID)
	})
}

// DeleteStockNote only deletes the note if it belongs to stockID.
func (u *WatchlistUsecase) DeleteStockNote(ctx context.Context, stockID, noteID int64) (bool, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return false, err
	}
	if err := validatePositiveID("note_id", noteID); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete stock note", func(w WatchlistWriter) (int64, error) {
		return w.DeleteStockNote(stockID, noteID)
	}))
}
