package adapters

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableNames lists the watchlist tables in dependency order; the health endpoint
// checks each of them.
var TableNames = []string{
	"stocks",
	"watchlists",
	"tags",
	"watchlist_stocks",
	"stock_tags",
	"watchlist_tags",
	"stock_notes",
	"user_layout",
}

// Migrate creates the watchlist tables and seeds the layout row.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&stockModel{},
		&watchlistModel{},
		&tagModel{},
		&watchlistStockModel{},
		&stockTagModel{},
		&watchlistTagModel{},
		&stockNoteModel{},
		&userLayoutModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate watchlist tables: %w", err)
	}

	seed := userLayoutModel{ID: layoutID, LayoutData: "{}", UpdatedAt: conn.NowFunc()}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed layout: %w", err)
	}
	return nil
}
