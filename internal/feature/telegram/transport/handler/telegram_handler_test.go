package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"stock_watchlist/internal/feature/telegram/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSenderUsecase はSenderUsecaseインターフェースのモック実装です。
type mockSenderUsecase struct {
	Configured    bool
	SendTextFunc  func(ctx context.Context, text string) entity.Result
	SendImageFunc func(ctx context.Context, file entity.File) entity.Result
	SendExcelFunc func(ctx context.Context, file entity.File) entity.Result
}

func (m *mockSenderUsecase) IsConfigured() bool { return m.Configured }

func (m *mockSenderUsecase) SendText(ctx context.Context, text string) entity.Result {
	return m.SendTextFunc(ctx, text)
}

func (m *mockSenderUsecase) SendImage(ctx context.Context, file entity.File) entity.Result {
	return m.SendImageFunc(ctx, file)
}

func (m *mockSenderUsecase) SendExcel(ctx context.Context, file entity.File) entity.Result {
	return m.SendExcelFunc(ctx, file)
}

func newRouter(uc SenderUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewTelegramHandler(uc).Register(r.Group("/api"))
	return r
}

// TestTelegramHandler_SendText_StatusMapping は送信結果とHTTPステータスの対応を検証します。
func TestTelegramHandler_SendText_StatusMapping(t *testing.T) {
	t.Parallel()

	desc := "Bad Request: chat not found"
	tests := []struct {
		name           string
		result         entity.Result
		expectedStatus int
	}{
		{"success", entity.Result{Status: entity.StatusSuccess, OK: true, Message: "Text sent to Telegram."}, http.StatusOK},
		{"bad request", entity.Result{Status: entity.StatusBadRequest, Message: "Text message cannot be empty."}, http.StatusBadRequest},
		{"not configured", entity.Result{Status: entity.StatusNotConfigured}, http.StatusServiceUnavailable},
		{"failed", entity.Result{Status: entity.StatusFailed, TelegramDescription: &desc}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			r := newRouter(&mockSenderUsecase{
				SendTextFunc: func(ctx context.Context, text string) entity.Result {
					got = text
					return tt.result
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/telegram/send/text", strings.NewReader(`{"message":"hello"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "hello", got)
		})
	}
}

// TestTelegramHandler_SendText_InvalidJSON は不正なJSONで 400 を返すことを検証します。
func TestTelegramHandler_SendText_InvalidJSON(t *testing.T) {
	t.Parallel()

	r := newRouter(&mockSenderUsecase{})
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/send/text", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, caption string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if caption != "" {
		require.NoError(t, mw.WriteField("caption", caption))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

// TestTelegramHandler_SendImage は multipart の画像アップロードが送信されることを検証します。
func TestTelegramHandler_SendImage(t *testing.T) {
	t.Parallel()

	var got entity.File
	r := newRouter(&mockSenderUsecase{
		SendImageFunc: func(ctx context.Context, file entity.File) entity.Result {
			got = file
			return entity.Result{Status: entity.StatusSuccess, OK: true, Message: "Image sent to Telegram.", TelegramMessageID: 9}
		},
	})

	body, ct := multipartBody(t, "chart.png", "image/png", []byte{0x89, 'P', 'N', 'G'}, "Nifty daily")
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/send/image", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"message":"Image sent to Telegram.","telegram_message_id":9}`, w.Body.String())
	assert.Equal(t, "chart.png", got.Name)
	assert.Equal(t, "image/png", got.ContentType)
	require.NotNil(t, got.Caption)
	assert.Equal(t, "Nifty daily", *got.Caption)
}

// TestTelegramHandler_SendExcel_MissingFile はファイルなしのアップロードで 400 を返すことを検証します。
func TestTelegramHandler_SendExcel_MissingFile(t *testing.T) {
	t.Parallel()

	r := newRouter(&mockSenderUsecase{})
	req := httptest.NewRequest(http.MethodPost, "/api/telegram/send/excel", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Excel file is required."}`, w.Body.String())
}

// TestTelegramHandler_StatusAndDelete は状態確認と削除未対応のレスポンスを検証します。
func TestTelegramHandler_StatusAndDelete(t *testing.T) {
	t.Parallel()

	r := newRouter(&mockSenderUsecase{Configured: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/telegram/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","configured":true}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/telegram/messages/12", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "Message ID: 12")
}
