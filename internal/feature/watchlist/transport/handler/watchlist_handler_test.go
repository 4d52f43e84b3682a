package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"stock_watchlist/internal/feature/watchlist/adapters"
	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/db"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWatchlistUsecase は必要なメソッドだけ Func で差し替えるモックです。
// 未設定のメソッドを呼ぶと埋め込みインターフェースが nil のため panic します。
type mockWatchlistUsecase struct {
	WatchlistUsecase
	GetStockByIDFunc func(ctx context.Context, id int64) (*entity.Stock, error)
	ListStocksFunc   func(ctx context.Context, limit int) ([]entity.Stock, error)
	UpdateStockFunc  func(ctx context.Context, id int64, in entity.UpdateStockInput) (*entity.Stock, error)
	DeleteStockFunc  func(ctx context.Context, id int64) (bool, error)
	IsConfiguredFunc func() bool
}

func (m *mockWatchlistUsecase) GetStockByID(ctx context.Context, id int64) (*entity.Stock, error) {
	return m.GetStockByIDFunc(ctx, id)
}

func (m *mockWatchlistUsecase) ListStocks(ctx context.Context, limit int) ([]entity.Stock, error) {
	return m.ListStocksFunc(ctx, limit)
}

func (m *mockWatchlistUsecase) UpdateStock(ctx context.Context, id int64, in entity.UpdateStockInput) (*entity.Stock, error) {
	return m.UpdateStockFunc(ctx, id, in)
}

func (m *mockWatchlistUsecase) DeleteStock(ctx context.Context, id int64) (bool, error) {
	return m.DeleteStockFunc(ctx, id)
}

func (m *mockWatchlistUsecase) IsConfigured() bool {
	return m.IsConfiguredFunc != nil && m.IsConfiguredFunc()
}

func newTestRouter(uc WatchlistUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewWatchlistHandler(uc).Register(r.Group("/api"))
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestNewWatchlistHandler はハンドラがユースケースを保持して生成されることを検証します。
func TestNewWatchlistHandler(t *testing.T) {
	t.Parallel()

	h := NewWatchlistHandler(&mockWatchlistUsecase{})
	assert.NotNil(t, h)
	assert.NotNil(t, h.uc)
}

// TestWatchlistHandler_ErrorMapping はユースケースのエラーとHTTPステータスの対応を検証します。
func TestWatchlistHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "validation error is 400 with its message",
			err:            &usecase.ValidationError{Field: "stock_id", Message: "stock_id must be > 0"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail":"stock_id must be > 0"}`,
		},
		{
			name:           "not configured is 503",
			err:            usecase.ErrNotConfigured,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"detail":"watchlist database is not configured"}`,
		},
		{
			name:           "uniqueness violation is 409",
			err:            &usecase.ServiceError{Action: "create stock", Err: fmt.Errorf("%w: dup", usecase.ErrAlreadyExists)},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invariant violation is 500",
			err:            &usecase.ServiceError{Action: "get or create tag", Err: fmt.Errorf("%w: failed to get or create tag %q", usecase.ErrInvariantViolation, "x")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"detail":"watchlist service failed while 'get or create tag': invariant violation: failed to get or create tag \"x\""}`,
		},
		{
			name:           "anything else is 500",
			err:            &usecase.ServiceError{Action: "get stock by id", Err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"detail":"watchlist service failed while 'get stock by id': boom"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRouter(&mockWatchlistUsecase{
				GetStockByIDFunc: func(ctx context.Context, id int64) (*entity.Stock, error) {
					return nil, tt.err
				},
			})

			w := perform(r, http.MethodGet, "/api/watchlist/stocks/1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

// TestWatchlistHandler_GetStock_NotFound は存在しない銘柄で 404 を返すことを検証します。
func TestWatchlistHandler_GetStock_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&mockWatchlistUsecase{
		GetStockByIDFunc: func(ctx context.Context, id int64) (*entity.Stock, error) { return nil, nil },
	})

	w := perform(r, http.MethodGet, "/api/watchlist/stocks/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Stock '42' not found"}`, w.Body.String())
}

// TestWatchlistHandler_PathAndQueryParsing はパスとクエリの不正値が 400 になることを検証します。
func TestWatchlistHandler_PathAndQueryParsing(t *testing.T) {
	t.Parallel()

	var gotLimit int
	r := newTestRouter(&mockWatchlistUsecase{
		ListStocksFunc: func(ctx context.Context, limit int) ([]entity.Stock, error) {
			gotLimit = limit
			return []entity.Stock{}, nil
		},
	})

	w := perform(r, http.MethodGet, "/api/watchlist/stocks", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DefaultListLimit, gotLimit)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/watchlist/stocks?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/api/watchlist/stocks/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestWatchlistHandler_UpdateStock_FieldSetFromKeys はボディのキーが更新対象集合になることを検証します。
func TestWatchlistHandler_UpdateStock_FieldSetFromKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		verify         func(t *testing.T, in entity.UpdateStockInput)
	}{
		{
			name:           "description only",
			body:           `{"description":"IT major"}`,
			expectedStatus: http.StatusOK,
			verify: func(t *testing.T, in entity.UpdateStockInput) {
				assert.Equal(t, entity.StockDescription, in.Fields)
				require.NotNil(t, in.Description)
				assert.Equal(t, "IT major", *in.Description)
			},
		},
		{
			name:           "null clears priority",
			body:           `{"priority":null,"tags":["it"]}`,
			expectedStatus: http.StatusOK,
			verify: func(t *testing.T, in entity.UpdateStockInput) {
				assert.True(t, in.Fields.Has(entity.StockPriority))
				assert.True(t, in.Fields.Has(entity.StockTags))
				assert.False(t, in.Fields.Has(entity.StockDescription))
				assert.Nil(t, in.Priority)
				assert.Equal(t, []string{"it"}, in.Tags)
			},
		},
		{
			name:           "unknown key",
			body:           `{"symbol":"TCS"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong type",
			body:           `{"priority":"high"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an object",
			body:           `[1,2]`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got entity.UpdateStockInput
			r := newTestRouter(&mockWatchlistUsecase{
				UpdateStockFunc: func(ctx context.Context, id int64, in entity.UpdateStockInput) (*entity.Stock, error) {
					got = in
					return &entity.Stock{ID: id}, nil
				},
			})

			w := perform(r, http.MethodPatch, "/api/watchlist/stocks/7", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

// TestWatchlistHandler_DeleteStock は削除の成否に応じたステータスを検証します。
func TestWatchlistHandler_DeleteStock(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&mockWatchlistUsecase{
		DeleteStockFunc: func(ctx context.Context, id int64) (bool, error) { return id == 1, nil },
	})

	w := perform(r, http.MethodDelete, "/api/watchlist/stocks/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

	w = perform(r, http.MethodDelete, "/api/watchlist/stocks/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestWatchlistHandler_Tables_NotConfigured は DB未設定時のテーブル確認レスポンスを検証します。
func TestWatchlistHandler_Tables_NotConfigured(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&mockWatchlistUsecase{})

	w := perform(r, http.MethodGet, "/api/watchlist/tables", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"configured":false,"connected":false,"tables":[]}`, w.Body.String())
}

// setupRealRouter は SQLite 上の本物のユースケースでルーターを組み立てます。
func setupRealRouter(t *testing.T) *gin.Engine {
	t.Helper()

	database := db.Open(db.Config{Driver: db.DriverSQLite, URL: filepath.Join(t.TempDir(), "api.db")})
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(context.Background(), adapters.Migrate))

	uc := usecase.NewWatchlistUsecase(adapters.NewHandler(database), adapters.TableNames)
	return newTestRouter(uc)
}

// TestWatchlistHandler_EndToEnd は SQLite を使ってAPIを通しで検証します。
func TestWatchlistHandler_EndToEnd(t *testing.T) {
	t.Parallel()

	r := setupRealRouter(t)

	w := perform(r, http.MethodPost, "/api/watchlist/stocks",
		`{"symbol":"INFY","instrument_token":123,"company_name":"Infosys","tags":["IT"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"exchange":"NSE"`)

	w = perform(r, http.MethodGet, "/api/watchlist/stocks/by-symbol/INFY", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)

	w = perform(r, http.MethodPatch, "/api/watchlist/stocks/1", `{"description":"IT major"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"description":"IT major"`)
	assert.Contains(t, w.Body.String(), `"company_name":"Infosys"`)

	w = perform(r, http.MethodPost, "/api/watchlist/stocks",
		`{"symbol":"INFY","instrument_token":124,"company_name":"Dup"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(r, http.MethodGet, "/api/watchlist/stocks/1/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"it"`)

	w = perform(r, http.MethodPost, "/api/watchlist/items", `{"watchlist_id":99,"stock_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Watchlist '99' does not exist"}`, w.Body.String())

	w = perform(r, http.MethodPost, "/api/watchlist/lists", `{"name":"Core"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = perform(r, http.MethodPost, "/api/watchlist/items", `{"watchlist_id":1,"stock_id":1,"notes":"long term"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = perform(r, http.MethodPatch, "/api/watchlist/items/1/1", `{"notes":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":null`)

	w = perform(r, http.MethodGet, "/api/watchlist/lists/1/items", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"symbol":"INFY"`)

	w = perform(r, http.MethodPost, "/api/notes/stock/1", `{"content":"results on Friday"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = perform(r, http.MethodGet, "/api/notes/stock/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "results on Friday")

	w = perform(r, http.MethodPut, "/api/layout", `{"layout_data":{"panels":[]}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = perform(r, http.MethodGet, "/api/layout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `{\"panels\":[]}`)

	w = perform(r, http.MethodGet, "/api/watchlist/tables", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":true`)

	w = perform(r, http.MethodDelete, "/api/watchlist/lists/1", "")
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
	w = perform(r, http.MethodGet, "/api/watchlist/items/1/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
