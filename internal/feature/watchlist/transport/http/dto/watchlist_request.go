// Package dto はwatchlistフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"encoding/json"
	"fmt"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// CreateStockReq は POST /api/watchlist/stocks のリクエストボディです。
type CreateStockReq struct {
	Symbol          string   `json:"symbol" binding:"required"`
	InstrumentToken int64    `json:"instrument_token" binding:"required"`
	CompanyName     string   `json:"company_name" binding:"required"`
	Exchange        string   `json:"exchange"`
	Description     *string  `json:"description"`
	Priority        *int     `json:"priority"`
	Tags            []string `json:"tags"`
}

// ToInput converts the request; exchange defaults to NSE.
func (r CreateStockReq) ToInput() entity.CreateStockInput {
	exchange := r.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}
	return entity.CreateStockInput{
		Symbol:          r.Symbol,
		InstrumentToken: r.InstrumentToken,
		CompanyName:     r.CompanyName,
		Exchange:        exchange,
		Description:     r.Description,
		Priority:        r.Priority,
		Tags:            r.Tags,
	}
}

// DefaultExchange is used when a request does not name an exchange.
const DefaultExchange = "NSE"

type CreateWatchlistReq struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type CreateTagReq struct {
	Name string `json:"name" binding:"required"`
}

// TagNameReq は銘柄・ウォッチリストへのタグ付けに使います。
type TagNameReq struct {
	TagName string `json:"tag_name" binding:"required"`
}

type CreateWatchlistStockReq struct {
	WatchlistID int64   `json:"watchlist_id" binding:"required"`
	StockID     int64   `json:"stock_id" binding:"required"`
	Notes       *string `json:"notes"`
}

type CreateNoteReq struct {
	Content string `json:"content" binding:"required"`
}

type LayoutReq struct {
	LayoutData json.RawMessage `json:"layout_data" binding:"required"`
}

// PATCH ボディはキーの有無で更新対象を決める。null のキーは値を消去する。

// Patch is a decoded PATCH body keyed by JSON field name.
type Patch map[string]json.RawMessage

// decode reports whether key is present and, if so, decodes it into dst.
func (p Patch) decode(key string, dst any) (bool, error) {
	raw, ok := p[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return true, nil
}

func (p Patch) unknown(allowed ...string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	for k := range p {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("unknown field %q", k)
		}
	}
	return nil
}

// StockInput builds an UpdateStockInput from the keys present in the body.
func (p Patch) StockInput() (entity.UpdateStockInput, error) {
	var in entity.UpdateStockInput
	if err := p.unknown("company_name", "exchange", "description", "priority", "tags"); err != nil {
		return in, err
	}
	fields := []struct {
		key  string
		flag entity.StockFields
		dst  any
	}{
		{"company_name", entity.StockCompanyName, &in.CompanyName},
		{"exchange", entity.StockExchange, &in.Exchange},
		{"description", entity.StockDescription, &in.Description},
		{"priority", entity.StockPriority, &in.Priority},
		{"tags", entity.StockTags, &in.Tags},
	}
	for _, f := range fields {
		present, err := p.decode(f.key, f.dst)
		if err != nil {
			return in, err
		}
		if present {
			in.Fields |= f.flag
		}
	}
	return in, nil
}

func (p Patch) WatchlistInput() (entity.UpdateWatchlistInput, error) {
	var in entity.UpdateWatchlistInput
	if err := p.unknown("name", "description"); err != nil {
		return in, err
	}
	if ok, err := p.decode("name", &in.Name); err != nil {
		return in, err
	} else if ok {
		in.Fields |= entity.WatchlistName
	}
	if ok, err := p.decode("description", &in.Description); err != nil {
		return in, err
	} else if ok {
		in.Fields |= entity.WatchlistDescription
	}
	return in, nil
}

func (p Patch) TagInput() (entity.UpdateTagInput, error) {
	var in entity.UpdateTagInput
	if err := p.unknown("name"); err != nil {
		return in, err
	}
	if ok, err := p.decode("name", &in.Name); err != nil {
		return in, err
	} else if ok {
		in.Fields |= entity.TagName
	}
	return in, nil
}

func (p Patch) WatchlistStockInput() (entity.UpdateWatchlistStockInput, error) {
	var in entity.UpdateWatchlistStockInput
	if err := p.unknown("notes"); err != nil {
		return in, err
	}
	if ok, err := p.decode("notes", &in.Notes); err != nil {
		return in, err
	} else if ok {
		in.Fields |= entity.WatchlistStockNotes
	}
	return in, nil
}

// Data returns the layout document. A JSON string is unwrapped, any other JSON value is kept as written.
func (r LayoutReq) Data() (string, error) {
	if len(r.LayoutData) > 0 && r.LayoutData[0] == '"' {
		var s string
		if err := json.Unmarshal(r.LayoutData, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(r.LayoutData), nil
}
