// Package adapters はwatchlistフィーチャーの gorm による Reader / Writer 実装を提供します。
package adapters

import (
	"time"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// テーブル定義。外部キーと ON DELETE CASCADE はストレージ側で強制する。

type stockModel struct {
	ID              int64     `gorm:"primaryKey"`
	Symbol          string    `gorm:"size:32;not null;uniqueIndex"`
	InstrumentToken int64     `gorm:"not null;index"`
	CompanyName     string    `gorm:"size:255;not null"`
	Exchange        string    `gorm:"size:16;not null"`
	Description     *string   `gorm:"type:text"`
	Priority        *int
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (stockModel) TableName() string { return "stocks" }

func (m stockModel) toEntity() entity.Stock {
	return entity.Stock{
		ID:              m.ID,
		Symbol:          m.Symbol,
		InstrumentToken: m.InstrumentToken,
		CompanyName:     m.CompanyName,
		Exchange:        m.Exchange,
		Description:     m.Description,
		Priority:        m.Priority,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type watchlistModel struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (watchlistModel) TableName() string { return "watchlists" }

func (m watchlistModel) toEntity() entity.Watchlist {
	return entity.Watchlist{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type tagModel struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (tagModel) TableName() string { return "tags" }

func (m tagModel) toEntity() entity.Tag {
	return entity.Tag{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// 中間テーブルは複合主キーで一意性を持たせる。関連フィールドはマイグレーションで
// 外部キー制約を生成するためだけに存在し、読み込み時には使わない。

type watchlistStockModel struct {
	WatchlistID int64          `gorm:"primaryKey;autoIncrement:false"`
	StockID     int64          `gorm:"primaryKey;autoIncrement:false;index"`
	Notes       *string        `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null"`
	Watchlist   watchlistModel `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE"`
	Stock       stockModel     `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
}

func (watchlistStockModel) TableName() string { return "watchlist_stocks" }

func (m watchlistStockModel) toEntity() entity.WatchlistStock {
	return entity.WatchlistStock{
		WatchlistID: m.WatchlistID,
		StockID:     m.StockID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

type stockTagModel struct {
	StockID   int64      `gorm:"primaryKey;autoIncrement:false"`
	TagID     int64      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time  `gorm:"not null"`
	Stock     stockModel `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
	Tag       tagModel   `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (stockTagModel) TableName() string { return "stock_tags" }

func (m stockTagModel) toEntity() entity.StockTag {
	return entity.StockTag{StockID: m.StockID, TagID: m.TagID, CreatedAt: m.CreatedAt}
}

type watchlistTagModel struct {
	WatchlistID int64          `gorm:"primaryKey;autoIncrement:false"`
	TagID       int64          `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time      `gorm:"not null"`
	Watchlist   watchlistModel `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE"`
	Tag         tagModel       `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (watchlistTagModel) TableName() string { return "watchlist_tags" }

func (m watchlistTagModel) toEntity() entity.WatchlistTag {
	return entity.WatchlistTag{WatchlistID: m.WatchlistID, TagID: m.TagID, CreatedAt: m.CreatedAt}
}

type stockNoteModel struct {
	ID        int64      `gorm:"primaryKey"`
	StockID   int64      `gorm:"not null;index"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	Stock     stockModel `gorm:"foreignKey:StockID;constraint:OnDelete:CASCADE"`
}

func (stockNoteModel) TableName() string { return "stock_notes" }

func (m stockNoteModel) toEntity() entity.StockNote {
	return entity.StockNote{ID: m.ID, StockID: m.StockID, Content: m.Content, CreatedAt: m.CreatedAt}
}

// layoutID is the primary key of the single layout row.
const layoutID = 1

type userLayoutModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false"`
	LayoutData string    `gorm:"type:text;not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (userLayoutModel) TableName() string { return "user_layout" }

func (m userLayoutModel) toEntity() entity.UserLayout {
	return entity.UserLayout{ID: m.ID, LayoutData: m.LayoutData, UpdatedAt: m.UpdatedAt}
}
