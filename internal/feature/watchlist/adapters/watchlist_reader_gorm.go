package adapters

import (
	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"

	"gorm.io/gorm"
)

// watchlistReader は usecase.WatchlistReader の gorm 実装です。
// 単位作業ごとに接続へ束縛された *gorm.DB を受け取ります。
type watchlistReader struct {
	db *gorm.DB
}

var _ usecase.WatchlistReader = (*watchlistReader)(nil)

// NewWatchlistReader binds a reader to conn.
func NewWatchlistReader(conn *gorm.DB) *watchlistReader {
	return &watchlistReader{db: conn}
}

// findOne returns nil without error when nothing matches. Find is used instead of
// First so that misses are not logged as errors by gorm.
func findOne[M any, E any](q *gorm.DB, conv func(M) E) (*E, error) {
	var rows []M
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	e := conv(rows[0])
	return &e, nil
}

func findAll[M any, E any](q *gorm.DB, conv func(M) E) ([]E, error) {
	var rows []M
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]E, 0, len(rows))
	for _, m := range rows {
		out = append(out, conv(m))
	}
	return out, nil
}

func (r *watchlistReader) GetStockByID(id int64) (*entity.Stock, error) {
	return findOne(r.db.Where("id = ?", id), stockModel.toEntity)
}

func (r *watchlistReader) GetStockBySymbol(symbol, exchange string) (*entity.Stock, error) {
	return findOne(r.db.Where("symbol = ? AND exchange = ?", symbol, exchange), stockModel.toEntity)
}

func (r *watchlistReader) GetStockByInstrumentToken(token int64) (*entity.Stock, error) {
	return findOne(r.db.Where("instrument_token = ?", token), stockModel.toEntity)
}

// ListStocks は作成日時の新しい順に最大 limit 件を返します。
func (r *watchlistReader) ListStocks(limit int) ([]entity.Stock, error) {
	return findAll(r.db.Order("created_at DESC").Order("id DESC").Limit(limit), stockModel.toEntity)
}

func (r *watchlistReader) ListStocksByTagName(tagName string, limit int) ([]entity.Stock, error) {
	q := r.db.Model(&stockModel{}).
		Select("stocks.*").
		Joins("JOIN stock_tags ON stock_tags.stock_id = stocks.id").
		Joins("JOIN tags ON tags.id = stock_tags.tag_id").
		Where("tags.name = ?", tagName).
		Order("stocks.symbol ASC").
		Limit(limit)
	return findAll(q, stockModel.toEntity)
}

func (r *watchlistReader) GetWatchlistByID(id int64) (*entity.Watchlist, error) {
	return findOne(r.db.Where("id = ?", id), watchlistModel.toEntity)
}

func (r *watchlistReader) GetWatchlistByName(name string) (*entity.Watchlist, error) {
	return findOne(r.db.Where("name = ?", name), watchlistModel.toEntity)
}

func (r *watchlistReader) ListWatchlists(limit int) ([]entity.Watchlist, error) {
	return findAll(r.db.Order("name ASC").Limit(limit), watchlistModel.toEntity)
}

func (r *watchlistReader) GetTagByID(id int64) (*entity.Tag, error) {
	return findOne(r.db.Where("id = ?", id), tagModel.toEntity)
}

func (r *watchlistReader) GetTagByName(name string) (*entity.Tag, error) {
	return findOne(r.db.Where("name = ?", name), tagModel.toEntity)
}

func (r *watchlistReader) ListTags(limit int) ([]entity.Tag, error) {
	return findAll(r.db.Order("name ASC").Limit(limit), tagModel.toEntity)
}

func (r *watchlistReader) GetStockTag(stockID, tagID int64) (*entity.StockTag, error) {
	return findOne(r.db.Where("stock_id = ? AND tag_id = ?", stockID, tagID), stockTagModel.toEntity)
}

func (r *watchlistReader) ListTagsForStock(stockID int64) ([]entity.Tag, error) {
	q := r.db.Model(&tagModel{}).
		Select("tags.*").
		Joins("JOIN stock_tags ON stock_tags.tag_id = tags.id").
		Where("stock_tags.stock_id = ?", stockID).
		Order("tags.name ASC")
	return findAll(q, tagModel.toEntity)
}

func (r *watchlistReader) ListStockTagsForStock(stockID int64) ([]entity.StockTag, error) {
	return findAll(r.db.Where("stock_id = ?", stockID).Order("created_at ASC").Order("tag_id ASC"), stockTagModel.toEntity)
}

func (r *watchlistReader) GetWatchlistTag(watchlistID, tagID int64) (*entity.WatchlistTag, error) {
	return findOne(r.db.Where("watchlist_id = ? AND tag_id = ?", watchlistID, tagID), watchlistTagModel.toEntity)
}

func (r *watchlistReader) ListTagsForWatchlist(watchlistID int64) ([]entity.Tag, error) {
	q := r.db.Model(&tagModel{}).
		Select("tags.*").
		Joins("JOIN watchlist_tags ON watchlist_tags.tag_id = tags.id").
		Where("watchlist_tags.watchlist_id = ?", watchlistID).
		Order("tags.name ASC")
	return findAll(q, tagModel.toEntity)
}

func (r *watchlistReader) ListWatchlistTagsForWatchlist(watchlistID int64) ([]entity.WatchlistTag, error) {
	return findAll(r.db.Where("watchlist_id = ?", watchlistID).Order("created_at ASC").Order("tag_id ASC"), watchlistTagModel.toEntity)
}

func (r *watchlistReader) GetWatchlistStock(watchlistID, stockID int64) (*entity.WatchlistStock, error) {
	return findOne(r.db.Where("watchlist_id = ? AND stock_id = ?", watchlistID, stockID), watchlistStockModel.toEntity)
}

// ListStocksInWatchlist は追加された順に銘柄を返します。
func (r *watchlistReader) ListStocksInWatchlist(watchlistID int64) ([]entity.Stock, error) {
	q := r.db.Model(&stockModel{}).
		Select("stocks.*").
		Joins("JOIN watchlist_stocks ON watchlist_stocks.stock_id = stocks.id").
		Where("watchlist_stocks.watchlist_id = ?", watchlistID).
		Order("watchlist_stocks.created_at ASC").
		Order("stocks.id ASC")
	return findAll(q, stockModel.toEntity)
}

func (r *watchlistReader) ListWatchlistStocksForWatchlist(watchlistID int64) ([]entity.WatchlistStock, error) {
	return findAll(r.db.Where("watchlist_id = ?", watchlistID).Order("created_at ASC").Order("stock_id ASC"), watchlistStockModel.toEntity)
}

func (r *watchlistReader) ListNotesForStock(stockID int64) ([]entity.StockNote, error) {
	return findAll(r.db.Where("stock_id = ?", stockID).Order("created_at DESC").Order("id DESC"), stockNoteModel.toEntity)
}

func (r *watchlistReader) GetLayout() (*entity.UserLayout, error) {
	return findOne(r.db.Where("id = ?", layoutID), userLayoutModel.toEntity)
}
