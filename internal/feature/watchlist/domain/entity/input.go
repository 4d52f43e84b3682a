package entity

// 部分更新は「更新対象フィールドの集合」と値スロットの組で表す。
// 集合に含まれないフィールドは変更しない。含まれていて値が nil のものは NULL にする。

// StockFields selects the stock columns an update touches.
type StockFields uint8

const (
	StockCompanyName StockFields = 1 << iota
	StockExchange
	StockDescription
	StockPriority
	// StockTags replaces the stock's tag links.
	StockTags
)

func (f StockFields) Has(field StockFields) bool { return f&field != 0 }

type WatchlistFields uint8

const (
	WatchlistName WatchlistFields = 1 << iota
	WatchlistDescription
)

func (f WatchlistFields) Has(field WatchlistFields) bool { return f&field != 0 }

type TagFields uint8

const (
	TagName TagFields = 1 << iota
)

func (f TagFields) Has(field TagFields) bool { return f&field != 0 }

type WatchlistStockFields uint8

const (
	WatchlistStockNotes WatchlistStockFields = 1 << iota
)

func (f WatchlistStockFields) Has(field WatchlistStockFields) bool { return f&field != 0 }

type CreateStockInput struct {
	Symbol          string
	InstrumentToken int64
	CompanyName     string
	Exchange        string
	Description     *string
	Priority        *int
	Tags            []string
}

// UpdateStockInput carries nullable slots; only fields in Fields are applied.
// CompanyName and Exchange are required columns and cannot be cleared.
type UpdateStockInput struct {
	Fields      StockFields
	CompanyName *string
	Exchange    *string
	Description *string
	Priority    *int
	Tags        []string
}

type CreateWatchlistInput struct {
	Name        string
	Description *string
}

type UpdateWatchlistInput struct {
	Fields      WatchlistFields
	Name        *string
	Description *string
}

type UpdateTagInput struct {
	Fields TagFields
	Name   *string
}

type CreateWatchlistStockInput struct {
	WatchlistID int64
	StockID     int64
	Notes       *string
}

type UpdateWatchlistStockInput struct {
	Fields WatchlistStockFields
	Notes  *string
}
