package adapters

import (
	"errors"
	"fmt"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// watchlistWriter は usecase.WatchlistWriter の gorm 実装です。
// created_at / updated_at は gorm の NowFunc で同一文の中で明示的に設定します。
type watchlistWriter struct {
	db *gorm.DB
}

var _ usecase.WatchlistWriter = (*watchlistWriter)(nil)

// NewWatchlistWriter binds a writer to conn.
func NewWatchlistWriter(conn *gorm.DB) *watchlistWriter {
	return &watchlistWriter{db: conn}
}

// translate maps uniqueness violations (gorm.Config.TranslateError) to usecase.ErrAlreadyExists.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", usecase.ErrAlreadyExists, err)
	}
	return err
}

func doNothingOnConflict(columns ...string) clause.OnConflict {
	cols := make([]clause.Column, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, clause.Column{Name: c})
	}
	return clause.OnConflict{Columns: cols, DoNothing: true}
}

// updateByKey applies values and reads the row back. It returns nil when no row matched.
func updateByKey[M any, E any](db *gorm.DB, conv func(M) E, values map[string]any, query string, args ...any) (*E, error) {
	var model M
	res := db.Model(&model).Where(query, args...).Updates(values)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return findOne(db.Where(query, args...), conv)
}

func deleteByKey[M any](db *gorm.DB, query string, args ...any) (int64, error) {
	var model M
	res := db.Where(query, args...).Delete(&model)
	return res.RowsAffected, res.Error
}

func (w *watchlistWriter) CreateStock(in entity.CreateStockInput) (*entity.Stock, error) {
	now := w.db.NowFunc()
	m := stockModel{
		Symbol:          in.Symbol,
		InstrumentToken: in.InstrumentToken,
		CompanyName:     in.CompanyName,
		Exchange:        in.Exchange,
		Description:     in.Description,
		Priority:        in.Priority,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := w.db.Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	s := m.toEntity()
	return &s, nil
}

// UpdateStock は Fields に含まれる列だけを更新します。Tags はここでは扱いません。
func (w *watchlistWriter) UpdateStock(id int64, in entity.UpdateStockInput) (*entity.Stock, error) {
	values := map[string]any{"updated_at": w.db.NowFunc()}
	if in.Fields.Has(entity.StockCompanyName) {
		values["company_name"] = in.CompanyName
	}
	if in.Fields.Has(entity.StockExchange) {
		values["exchange"] = in.Exchange
	}
	if in.Fields.Has(entity.StockDescription) {
		values["description"] = in.Description
	}
	if in.Fields.Has(entity.StockPriority) {
		values["priority"] = in.Priority
	}
	return updateByKey(w.db, stockModel.toEntity, values, "id = ?", id)
}

func (w *watchlistWriter) DeleteStock(id int64) (int64, error) {
	return deleteByKey[stockModel](w.db, "id = ?", id)
}

func (w *watchlistWriter) CreateWatchlist(in entity.CreateWatchlistInput) (*entity.Watchlist, error) {
	now := w.db.NowFunc()
	m := watchlistModel{Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := w.db.Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	wl := m.toEntity()
	return &wl, nil
}

func (w *watchlistWriter) UpdateWatchlist(id int64, in entity.UpdateWatchlistInput) (*entity.Watchlist, error) {
	values := map[string]any{"updated_at": w.db.NowFunc()}
	if in.Fields.Has(entity.WatchlistName) {
		values["name"] = in.Name
	}
	if in.Fields.Has(entity.WatchlistDescription) {
		values["description"] = in.Description
	}
	return updateByKey(w.db, watchlistModel.toEntity, values, "id = ?", id)
}

func (w *watchlistWriter) DeleteWatchlist(id int64) (int64, error) {
	return deleteByKey[watchlistModel](w.db, "id = ?", id)
}

func (w *watchlistWriter) CreateTag(name string) (*entity.Tag, error) {
	now := w.db.NowFunc()
	m := tagModel{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := w.db.Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	t := m.toEntity()
	return &t, nil
}

// InsertTagIfAbsent は name が既に存在する場合は何もせず nil を返します。
func (w *watchlistWriter) InsertTagIfAbsent(name string) (*entity.Tag, error) {
	now := w.db.NowFunc()
	m := tagModel{Name: name, CreatedAt: now, UpdatedAt: now}
	res := w.db.Clauses(doNothingOnConflict("name")).Create(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	t := m.toEntity()
	return &t, nil
}

func (w *watchlistWriter) UpdateTag(id int64, in entity.UpdateTagInput) (*entity.Tag, error) {
	values := map[string]any{"updated_at": w.db.NowFunc()}
	if in.Fields.Has(entity.TagName) {
		values["name"] = in.Name
	}
	return updateByKey(w.db, tagModel.toEntity, values, "id = ?", id)
}

func (w *watchlistWriter) DeleteTag(id int64) (int64, error) {
	return deleteByKey[tagModel](w.db, "id = ?", id)
}

func (w *watchlistWriter) InsertStockTagIfAbsent(stockID, tagID int64) (*entity.StockTag, error) {
	m := stockTagModel{StockID: stockID, TagID: tagID, CreatedAt: w.db.NowFunc()}
	res := w.db.Omit(clause.Associations).Clauses(doNothingOnConflict("stock_id", "tag_id")).Create(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	link := m.toEntity()
	return &link, nil
}

func (w *watchlistWriter) DeleteStockTag(stockID, tagID int64) (int64, error) {
	return deleteByKey[stockTagModel](w.db, "stock_id = ? AND tag_id = ?", stockID, tagID)
}

func (w *watchlistWriter) DeleteAllStockTags(stockID int64) (int64, error) {
	return deleteByKey[stockTagModel](w.db, "stock_id = ?", stockID)
}

func (w *watchlistWriter) InsertWatchlistTagIfAbsent(watchlistID, tagID int64) (*entity.WatchlistTag, error) {
	m := watchlistTagModel{WatchlistID: watchlistID, TagID: tagID, CreatedAt: w.db.NowFunc()}
	res := w.db.Omit(clause.Associations).Clauses(doNothingOnConflict("watchlist_id", "tag_id")).Create(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	link := m.toEntity()
	return &link, nil
}

func (w *watchlistWriter) DeleteWatchlistTag(watchlistID, tagID int64) (int64, error) {
	return deleteByKey[watchlistTagModel](w.db, "watchlist_id = ? AND tag_id = ?", watchlistID, tagID)
}

func (w *watchlistWriter) CreateWatchlistStock(in entity.CreateWatchlistStockInput) (*entity.WatchlistStock, error) {
	m := watchlistStockModel{
		WatchlistID: in.WatchlistID,
		StockID:     in.StockID,
		Notes:       in.Notes,
		CreatedAt:   w.db.NowFunc(),
	}
	if err := w.db.Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, translate(err)
	}
	link := m.toEntity()
	return &link, nil
}

func (w *watchlistWriter) InsertWatchlistStockIfAbsent(watchlistID, stockID int64) (*entity.WatchlistStock, error) {
	m := watchlistStockModel{WatchlistID: watchlistID, StockID: stockID, CreatedAt: w.db.NowFunc()}
	res := w.db.Omit(clause.Associations).Clauses(doNothingOnConflict("watchlist_id", "stock_id")).Create(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	link := m.toEntity()
	return &link, nil
}

// UpdateWatchlistStock has no updated_at column to refresh; only notes change.
func (w *watchlistWriter) UpdateWatchlistStock(watchlistID, stockID int64, in entity.UpdateWatchlistStockInput) (*entity.WatchlistStock, error) {
	values := map[string]any{}
	if in.Fields.Has(entity.WatchlistStockNotes) {
		values["notes"] = in.Notes
	}
	if len(values) == 0 {
		return findOne(w.db.Where("watchlist_id = ? AND stock_id = ?", watchlistID, stockID), watchlistStockModel.toEntity)
	}
	return updateByKey(w.db, watchlistStockModel.toEntity, values, "watchlist_id = ? AND stock_id = ?", watchlistID, stockID)
}

func (w *watchlistWriter) DeleteWatchlistStock(watchlistID, stockID int64) (int64, error) {
	return deleteByKey[watchlistStockModel](w.db, "watchlist_id = ? AND stock_id = ?", watchlistID, stockID)
}

func (w *watchlistWriter) CreateStockNote(stockID int64, content string) (*entity.StockNote, error) {
	m := stockNoteModel{StockID: stockID, Content: content, CreatedAt: w.db.NowFunc()}
	if err := w.db.Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, err
	}
	n := m.toEntity()
	return &n, nil
}

func (w *watchlistWriter) DeleteStockNote(stockID, noteID int64) (int64, error) {
	return deleteByKey[stockNoteModel](w.db, "id = ? AND stock_id = ?", noteID, stockID)
}

func (w *watchlistWriter) UpdateLayout(layoutData string) (*entity.UserLayout, error) {
	values := map[string]any{"layout_data": layoutData, "updated_at": w.db.NowFunc()}
	return updateByKey(w.db, userLayoutModel.toEntity, values, "id = ?", layoutID)
}
