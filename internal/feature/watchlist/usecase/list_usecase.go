package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

func (u *WatchlistUsecase) CreateWatchlist(ctx context.Context, in entity.CreateWatchlistInput) (*entity.Watchlist, error) {
	name, err := normalizeRequiredText("name", in.Name)
	if err != nil {
		return nil, err
	}
	normalized := entity.CreateWatchlistInput{
		Name:        name,
		Description: normalizeOptionalText(in.Description),
	}
	return write(ctx, u.db, "create watchlist", func(w WatchlistWriter) (*entity.Watchlist, error) {
		return w.CreateWatchlist(normalized)
	})
}

func (u *WatchlistUsecase) GetWatchlistByID(ctx context.Context, id int64) (*entity.Watchlist, error) {
	if err := validatePositiveID("watchlist_id", id); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get watchlist by id", func(r WatchlistReader) (*entity.Watchlist, error) {
		return r.GetWatchlistByID(id)
	})
}

func (u *WatchlistUsecase) GetWatchlistByName(ctx context.Context, name string) (*entity.Watchlist, error) {
	n, err := normalizeRequiredText("name", name)
	if err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get watchlist by name", func(r WatchlistReader) (*entity.Watchlist, error) {
		return r.GetWatchlistByName(n)
	})
}

func (u *WatchlistUsecase) ListWatchlists(ctx context.Context, limit int) ([]entity.Watchlist, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list watchlists", func(r WatchlistReader) ([]entity.Watchlist, error) {
		return r.ListWatchlists(limit)
	})
}

func (u *WatchlistUsecase) UpdateWatchlist(ctx context.Context, id int64, in entity.UpdateWatchlistInput) (*entity.Watchlist, error) {
	if err := validatePositiveID("watchlist_id", id); err != nil {
		return nil, err
	}
	if in.Fields == 0 {
		return nil, invalid("fields", "update watchlist called with no fields")
	}

	normalized := entity.UpdateWatchlistInput{Fields: in.Fields}
	if in.Fields.Has(entity.WatchlistName) {
		if in.Name == nil {
			return nil, invalid("name", "name cannot be null")
		}
		v, err := normalizeRequiredText("name", *in.Name)
		if err != nil {
			return nil, err
		}
		normalized.Name = &v
	}
	if in.Fields.Has(entity.WatchlistDescription) {
		normalized.Description = normalizeOptionalText(in.Description)
	}

	return write(ctx, u.db, "update watchlist", func(w WatchlistWriter) (*entity.Watchlist, error) {
		return w.UpdateWatchlist(id, normalized)
	})
}

// DeleteWatchlist removes the watchlist; its stock and tag links cascade.
func (u *WatchlistUsecase) DeleteWatchlist(ctx context.Context, id int64) (bool, error) {
	if err := validatePositiveID("watchlist_id", id); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete watchlist", func(w WatchlistWriter) (int64, error) {
		return w.DeleteWatchlist(id)
	}))
}
