package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// CreateStock validates the input and creates the stock together with its tags
// in one transaction.
func (u *WatchlistUsecase) CreateStock(ctx context.Context, in entity.CreateStockInput) (*entity.Stock, error) {
	symbol, err := normalizeSymbol(in.Symbol)
	if err != nil {
		return nil, err
	}
	if err := validatePositiveID("instrument_token", in.InstrumentToken); err != nil {
		return nil, err
	}
	companyName, err := normalizeRequiredText("company_name", in.CompanyName)
	if err != nil {
		return nil, err
	}
	exchange, err := normalizeExchange(in.Exchange)
	if err != nil {
		return nil, err
	}
	if err := validatePriority(in.Priority); err != nil {
		return nil, err
	}

	normalized := entity.CreateStockInput{
		Symbol:          symbol,
		InstrumentToken: in.InstrumentToken,
		CompanyName:     companyName,
		Exchange:        exchange,
		Description:     normalizeOptionalText(in.Description),
		Priority:        in.Priority,
		Tags:            normalizeTags(in.Tags),
	}

	return transaction(ctx, u.db, "create stock", func(r WatchlistReader, w WatchlistWriter) (*entity.Stock, error) {
		stock, err := w.CreateStock(normalized)
		if err != nil {
			return nil, err
		}
		if err := linkStockTags(r, w, stock.ID, normalized.Tags); err != nil {
			return nil, err
		}
		return stock, nil
	})
}

func linkStockTags(r WatchlistReader, w WatchlistWriter, stockID int64, names []string) error {
	for _, name := range names {
		tag, err := getOrCreateTag(r, w, name)
		if err != nil {
			return err
		}
		if _, err := getOrCreateStockTag(r, w, stockID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

func (u *WatchlistUsecase) GetStockByID(ctx context.Context, id int64) (*entity.Stock, error) {
	if err := validatePositiveID("stock_id", id); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get stock by id", func(r WatchlistReader) (*entity.Stock, error) {
		return r.GetStockByID(id)
	})
}

// GetStockBySymbol looks up a stock after upper-casing symbol and exchange.
func (u *WatchlistUsecase) GetStockBySymbol(ctx context.Context, symbol, exchange string) (*entity.Stock, error) {
	sym, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	exch, err := normalizeExchange(exchange)
	if err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get stock by symbol", func(r WatchlistReader) (*entity.Stock, error) {
		return r.GetStockBySymbol(sym, exch)
	})
}

func (u *WatchlistUsecase) GetStockByInstrumentToken(ctx context.Context, token int64) (*entity.Stock, error) {
	if err := validatePositiveID("instrument_token", token); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get stock by instrument token", func(r WatchlistReader) (*entity.Stock, error) {
		return r.GetStockByInstrumentToken(token)
	})
}

// ListStocks returns at most limit stocks, newest first.
func (u *WatchlistUsecase) ListStocks(ctx context.Context, limit int) ([]entity.Stock, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list stocks", func(r WatchlistReader) ([]entity.Stock, error) {
		return r.ListStocks(limit)
	})
}

// ListStocksByTag returns stocks linked to the tag with the given name.
func (u *WatchlistUsecase) ListStocksByTag(ctx context.Context, tagName string, limit int) ([]entity.Stock, error) {
	name, err := normalizeTagName(tagName)
	if err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list stocks by tag", func(r WatchlistReader) ([]entity.Stock, error) {
		return r.ListStocksByTagName(name, limit)
	})
}

// UpdateStock applies only the flagged fields. Flagging StockTags replaces the
// stock's tag links in the same transaction as the column update.
func (u *WatchlistUsecase) UpdateStock(ctx context.Context, id int64, in entity.UpdateStockInput) (*entity.Stock, error) {
	if err := validatePositiveID("stock_id", id); err != nil {
		return nil, err
	}
	if in.Fields == 0 {
		return nil, invalid("fields", "update stock called with no fields")
	}

	normalized := entity.UpdateStockInput{Fields: in.Fields}
	if in.Fields.Has(entity.StockCompanyName) {
		if in.CompanyName == nil {
			return nil, invalid("company_name", "company_name cannot be null")
		}
		v, err := normalizeRequiredText("company_name", *in.CompanyName)
		if err != nil {
			return nil, err
		}
		normalized.CompanyName = &v
	}
	if in.Fields.Has(entity.StockExchange) {
		if in.Exchange == nil {
			return nil, invalid("exchange", "exchange cannot be null")
		}
		v, err := normalizeExchange(*in.Exchange)
		if err != nil {
			return nil, err
		}
		normalized.Exchange = &v
	}
	if in.Fields.Has(entity.StockDescription) {
		normalized.Description = normalizeOptionalText(in.Description)
	}
	if in.Fields.Has(entity.StockPriority) {
		if err := validatePriority(in.Priority); err != nil {
			return nil, err
		}
		normalized.Priority = in.Priority
	}
	if in.Fields.Has(entity.StockTags) {
		normalized.Tags = normalizeTags(in.Tags)
	}

	if !normalized.Fields.Has(entity.StockTags) {
		return write(ctx, u.db, "update stock", func(w WatchlistWriter) (*entity.Stock, error) {
			return w.UpdateStock(id, normalized)
		})
	}

	return transaction(ctx, u.db, "update stock", func(r WatchlistReader, w WatchlistWriter) (*entity.Stock, error) {
		stock, err := w.UpdateStock(id, normalized)
		if err != nil || stock == nil {
			return stock, err
		}
		if _, err := w.DeleteAllStockTags(id); err != nil {
			return nil, err
		}
		if err := linkStockTags(r, w, id, normalized.Tags); err != nil {
			return nil, err
		}
		return stock, nil
	})
}

// DeleteStock reports whether a row was removed. Junction rows cascade.
func (u *WatchlistUsecase) DeleteStock(ctx context.Context, id int64) (bool, error) {
	if err := validatePositiveID("stock_id", id); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete stock", func(w WatchlistWriter) (int64, error) {
		return w.DeleteStock(id)
	}))
}
