package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// CreateWatchlistStock adds a stock to a watchlist. Both parents are looked up
// first and a missing one is reported as a validation error naming its id.
func (u *WatchlistUsecase) CreateWatchlistStock(ctx context.Context, in entity.CreateWatchlistStockInput) (*entity.WatchlistStock, error) {
	if err := validatePositiveID("watchlist_id", in.WatchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("stock_id", in.StockID); err != nil {
		return nil, err
	}
	normalized := entity.CreateWatchlistStockInput{
		WatchlistID: in.WatchlistID,
		StockID:     in.StockID,
		Notes:       normalizeOptionalText(in.Notes),
	}

	return transaction(ctx, u.db, "create watchlist stock", func(r WatchlistReader, w WatchlistWriter) (*entity.WatchlistStock, error) {
		if err := requireWatchlist(r, normalized.WatchlistID); err != nil {
			return nil, err
		}
		if err := requireStock(r, normalized.StockID); err != nil {
			return nil, err
		}
		return w.CreateWatchlistStock(normalized)
	})
}

func (u *WatchlistUsecase) GetOrCreateWatchlistStock(ctx context.Context, watchlistID, stockID int64) (*entity.WatchlistStock, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "get or create watchlist stock", func(r WatchlistReader, w WatchlistWriter) (*entity.WatchlistStock, error) {
		if err := requireWatchlist(r, watchlistID); err != nil {
			return nil, err
		}
		if err := requireStock(r, stockID); err != nil {
			return nil, err
		}
		return getOrCreateWatchlistStock(r, w, watchlistID, stockID)
	})
}

func (u *WatchlistUsecase) GetWatchlistStock(ctx context.Context, watchlistID, stockID int64) (*entity.WatchlistStock, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get watchlist stock", func(r WatchlistReader) (*entity.WatchlistStock, error) {
		return r.GetWatchlistStock(watchlistID, stockID)
	})
}

// ListStocksInWatchlist returns the stocks of a watchlist in the order they were added.
func (u *WatchlistUsecase) ListStocksInWatchlist(ctx context.Context, watchlistID int64) ([]entity.Stock, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list stocks in watchlist", func(r WatchlistReader) ([]entity.Stock, error) {
		return r.ListStocksInWatchlist(watchlistID)
	})
}

// ListWatchlistStocks returns the junction rows, including notes.
func (u *WatchlistUsecase) ListWatchlistStocks(ctx context.Context, watchlistID int64) ([]entity.WatchlistStock, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list watchlist stocks", func(r WatchlistReader) ([]entity.WatchlistStock, error) {
		return r.ListWatchlistStocksForWatchlist(watchlistID)
	})
}

func (u *WatchlistUsecase) UpdateWatchlistStock(ctx context.Context, watchlistID, stockID int64, in entity.UpdateWatchlistStockInput) (*entity.WatchlistStock, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	if in.Fields == 0 {
		return nil, invalid("fields", "update watchlist stock called with no fields")
	}

	normalized := entity.UpdateWatchlistStockInput{Fields: in.Fields}
	if in.Fields.Has(entity.WatchlistStockNotes) {
		normalized.Notes = normalizeOptionalText(in.Notes)
	}

	return write(ctx, u.db, "update watchlist stock", func(w WatchlistWriter) (*entity.WatchlistStock, error) {
		return w.UpdateWatchlistStock(watchlistID, stockID, normalized)
	})
}

func (u *WatchlistUsecase) DeleteWatchlistStock(ctx context.Context, watchlistID, stockID int64) (bool, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return false, err
	}
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete watchlist stock", func(w WatchlistWriter) (int64, error) {
		return w.DeleteWatchlistStock(watchlistID, stockID)
	}))
}

func (u *WatchlistUsecase) GetOrCreateStockTag(ctx context.Context, stockID, tagID int64) (*entity.StockTag, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "get or create stock tag", func(r WatchlistReader, w WatchlistWriter) (*entity.StockTag, error) {
		return getOrCreateStockTag(r, w, stockID, tagID)
	})
}

// AddTagToStock gets or creates the tag by name and links it to the stock.
func (u *WatchlistUsecase) AddTagToStock(ctx context.Context, stockID int64, tagName string) (*entity.Tag, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	name, err := normalizeTagName(tagName)
	if err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "add tag to stock", func(r WatchlistReader, w WatchlistWriter) (*entity.Tag, error) {
		if err := requireStock(r, stockID); err != nil {
			return nil, err
		}
		tag, err := getOrCreateTag(r, w, name)
		if err != nil {
			return nil, err
		}
		if _, err := getOrCreateStockTag(r, w, stockID, tag.ID); err != nil {
			return nil, err
		}
		return tag, nil
	})
}

func (u *WatchlistUsecase) GetStockTag(ctx context.Context, stockID, tagID int64) (*entity.StockTag, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get stock tag", func(r WatchlistReader) (*entity.StockTag, error) {
		return r.GetStockTag(stockID, tagID)
	})
}

func (u *WatchlistUsecase) ListTagsForStock(ctx context.Context, stockID int64) ([]entity.Tag, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list tags for stock", func(r WatchlistReader) ([]entity.Tag, error) {
		return r.ListTagsForStock(stockID)
	})
}

func (u *WatchlistUsecase) ListStockTagsForStock(ctx context.Context, stockID int64) ([]entity.StockTag, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list stock tags", func(r WatchlistReader) ([]entity.StockTag, error) {
		return r.ListStockTagsForStock(stockID)
	})
}

func (u *WatchlistUsecase) DeleteStockTag(ctx context.Context, stockID, tagID int64) (bool, error) {
	if err := validatePositiveID("stock_id", stockID); err != nil {
		return false, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete stock tag", func(w WatchlistWriter) (int64, error) {
		return w.DeleteStockTag(stockID, tagID)
	}))
}

func (u *WatchlistUsecase) GetOrCreateWatchlistTag(ctx context.Context, watchlistID, tagID int64) (*entity.WatchlistTag, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "get or create watchlist tag", func(r WatchlistReader, w WatchlistWriter) (*entity.WatchlistTag, error) {
		return getOrCreateWatchlistTag(r, w, watchlistID, tagID)
	})
}

// AddTagToWatchlist gets or creates the tag by name and links it to the watchlist.
func (u *WatchlistUsecase) AddTagToWatchlist(ctx context.Context, watchlistID int64, tagName string) (*entity.Tag, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	name, err := normalizeTagName(tagName)
	if err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "add tag to watchlist", func(r WatchlistReader, w WatchlistWriter) (*entity.Tag, error) {
		if err := requireWatchlist(r, watchlistID); err != nil {
			return nil, err
		}
		tag, err := getOrCreateTag(r, w, name)
		if err != nil {
			return nil, err
		}
		if _, err := getOrCreateWatchlistTag(r, w, watchlistID, tag.ID); err != nil {
			return nil, err
		}
		return tag, nil
	})
}

func (u *WatchlistUsecase) GetWatchlistTag(ctx context.Context, watchlistID, tagID int64) (*entity.WatchlistTag, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get watchlist tag", func(r WatchlistReader) (*entity.WatchlistTag, error) {
		return r.GetWatchlistTag(watchlistID, tagID)
	})
}

func (u *WatchlistUsecase) ListTagsForWatchlist(ctx context.Context, watchlistID int64) ([]entity.Tag, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list tags for watchlist", func(r WatchlistReader) ([]entity.Tag, error) {
		return r.ListTagsForWatchlist(watchlistID)
	})
}

func (u *WatchlistUsecase) ListWatchlistTagsForWatchlist(ctx context.Context, watchlistID int64) ([]entity.WatchlistTag, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list watchlist tags", func(r WatchlistReader) ([]entity.WatchlistTag, error) {
		return r.ListWatchlistTagsForWatchlist(watchlistID)
	})
}

func (u *WatchlistUsecase) DeleteWatchlistTag(ctx context.Context, watchlistID, tagID int64) (bool, error) {
	if err := validatePositiveID("watchlist_id", watchlistID); err != nil {
		return false, err
	}
	if err := validatePositiveID("tag_id", tagID); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete watchlist tag", func(w WatchlistWriter) (int64, error) {
		return w.DeleteWatchlistTag(watchlistID, tagID)
	}))
}
