// Package handler はtelegramフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"stock_watchlist/internal/feature/telegram/domain/entity"
	"stock_watchlist/internal/feature/telegram/transport/http/dto"
	"stock_watchlist/internal/feature/telegram/usecase"

	"github.com/gin-gonic/gin"
)

// SenderUsecase はTelegram送信のユースケースを定義します。
type SenderUsecase interface {
	IsConfigured() bool
	SendText(ctx context.Context, text string) entity.Result
	SendImage(ctx context.Context, file entity.File) entity.Result
	SendExcel(ctx context.Context, file entity.File) entity.Result
}

// TelegramHandler はTelegram送信のHTTPリクエストを処理します。
type TelegramHandler struct {
	uc SenderUsecase
}

func NewTelegramHandler(uc SenderUsecase) *TelegramHandler {
	return &TelegramHandler{uc: uc}
}

// Register mounts the routes under /telegram.
func (h *TelegramHandler) Register(api *gin.RouterGroup) {
	tg := api.Group("/telegram")
	tg.GET("/status", h.Status)
	tg.POST("/send/text", h.SendText)
	tg.POST("/send/image", h.SendImage)
	tg.POST("/send/excel", h.SendExcel)
	tg.DELETE("/messages/:id", h.DeleteMessage)
}

func (h *TelegramHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok", Configured: h.uc.IsConfigured()})
}

func (h *TelegramHandler) SendText(c *gin.Context) {
	var req dto.SendTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ActionResponse{
			Message: "Request body must be valid JSON with a non-empty 'message' field.",
		})
		return
	}
	respond(c, h.uc.SendText(c.Request.Context(), req.Message))
}

func (h *TelegramHandler) SendImage(c *gin.Context) {
	file, ok := readUpload(c, "Image file is required.")
	if !ok {
		return
	}
	respond(c, h.uc.SendImage(c.Request.Context(), file))
}

func (h *TelegramHandler) SendExcel(c *gin.Context) {
	file, ok := readUpload(c, "Excel file is required.")
	if !ok {
		return
	}
	respond(c, h.uc.SendExcel(c.Request.Context(), file))
}

// DeleteMessage は送信専用モードのため 501 を返します。
func (h *TelegramHandler) DeleteMessage(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, dto.ActionResponse{
		Message: fmt.Sprintf("Delete is not enabled in send-only mode. Message ID: %s", c.Param("id")),
	})
}

// readUpload は multipart の file と caption を読み取ります。
// 上限を 1 バイト超えるところまで読み、サイズ判定はユースケースに任せます。
func readUpload(c *gin.Context, missing string) (entity.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ActionResponse{Message: missing})
		return entity.File{}, false
	}
	f, err := header.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusBadRequest, dto.ActionResponse{Message: missing})
		return entity.File{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxUploadBytes+1))
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		c.JSON(http.StatusBadRequest, dto.ActionResponse{Message: missing})
		return entity.File{}, false
	}

	file := entity.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Bytes:       data,
	}
	if file.ContentType == "" {
		file.ContentType = "application/octet-stream"
	}
	if caption, ok := c.GetPostForm("caption"); ok {
		file.Caption = &caption
	}
	return file, true
}

func respond(c *gin.Context, res entity.Result) {
	status := http.StatusInternalServerError
	switch res.Status {
	case entity.StatusSuccess:
		status = http.StatusOK
	case entity.StatusBadRequest:
		status = http.StatusBadRequest
	case entity.StatusNotConfigured:
		status = http.StatusServiceUnavailable
	case entity.StatusFailed:
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.ActionResponse{
		OK:                  res.OK,
		Message:             res.Message,
		TelegramDescription: res.TelegramDescription,
		TelegramMessageID:   res.TelegramMessageID,
	})
}
