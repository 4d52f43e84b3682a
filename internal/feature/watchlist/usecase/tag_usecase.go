package usecase

import (
	"context"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// タグ名は小文字に正規化して保存・検索する。

func (u *WatchlistUsecase) CreateTag(ctx context.Context, name string) (*entity.Tag, error) {
	n, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	return write(ctx, u.db, "create tag", func(w WatchlistWriter) (*entity.Tag, error) {
		return w.CreateTag(n)
	})
}

// GetOrCreateTag is idempotent: concurrent callers with the same normalized name
// observe the same row.
func (u *WatchlistUsecase) GetOrCreateTag(ctx context.Context, name string) (*entity.Tag, error) {
	n, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	return transaction(ctx, u.db, "get or create tag", func(r WatchlistReader, w WatchlistWriter) (*entity.Tag, error) {
		return getOrCreateTag(r, w, n)
	})
}

func (u *WatchlistUsecase) GetTagByID(ctx context.Context, id int64) (*entity.Tag, error) {
	if err := validatePositiveID("tag_id", id); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get tag by id", func(r WatchlistReader) (*entity.Tag, error) {
		return r.GetTagByID(id)
	})
}

func (u *WatchlistUsecase) GetTagByName(ctx context.Context, name string) (*entity.Tag, error) {
	n, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	return read(ctx, u.db, "get tag by name", func(r WatchlistReader) (*entity.Tag, error) {
		return r.GetTagByName(n)
	})
}

func (u *WatchlistUsecase) ListTags(ctx context.Context, limit int) ([]entity.Tag, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return read(ctx, u.db, "list tags", func(r WatchlistReader) ([]entity.Tag, error) {
		return r.ListTags(limit)
	})
}

func (u *WatchlistUsecase) UpdateTag(ctx context.Context, id int64, in entity.UpdateTagInput) (*entity.Tag, error) {
	if err := validatePositiveID("tag_id", id); err != nil {
		return nil, err
	}
	if in.Fields == 0 {
		return nil, invalid("fields", "update tag called with no fields")
	}

	normalized := entity.UpdateTagInput{Fields: in.Fields}
	if in.Fields.Has(entity.TagName) {
		if in.Name == nil {
			return nil, invalid("name", "name cannot be null")
		}
		v, err := normalizeTagName(*in.Name)
		if err != nil {
			return nil, err
		}
		normalized.Name = &v
	}

	return write(ctx, u.db, "update tag", func(w WatchlistWriter) (*entity.Tag, error) {
		return w.UpdateTag(id, normalized)
	})
}

func (u *WatchlistUsecase) DeleteTag(ctx context.Context, id int64) (bool, error) {
	if err := validatePositiveID("tag_id", id); err != nil {
		return false, err
	}
	return deleted(write(ctx, u.db, "delete tag", func(w WatchlistWriter) (int64, error) {
		return w.DeleteTag(id)
	}))
}
