package dto

import "stock_watchlist/internal/feature/watchlist/domain/entity"

// ErrorResponse is the body of every non-2xx watchlist response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// TablesResponse は GET /api/watchlist/tables のレスポンスです。
type TablesResponse struct {
	Configured bool                       `json:"configured"`
	Connected  bool                       `json:"connected"`
	Tables     []entity.TableAccessStatus `json:"tables"`
}
