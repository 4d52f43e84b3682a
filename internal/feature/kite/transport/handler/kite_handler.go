// Package handler はkiteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"stock_watchlist/internal/feature/kite/domain/entity"
	"stock_watchlist/internal/feature/kite/transport/http/dto"
	"stock_watchlist/internal/feature/kite/usecase"

	"github.com/gin-gonic/gin"
)

// KiteUsecase はKiteログインフローのユースケースを定義します。
type KiteUsecase interface {
	LoginURL(ctx context.Context) (string, error)
	HandleCallback(ctx context.Context, requestToken, state, status string) (*entity.Session, error)
	Status(ctx context.Context) (entity.Status, error)
}

type KiteHandler struct {
	uc KiteUsecase
}

func NewKiteHandler(uc KiteUsecase) *KiteHandler {
	return &KiteHandler{uc: uc}
}

// Register mounts /kite on rg. The callback is the redirect URL registered with Kite.
func (h *KiteHandler) Register(rg *gin.RouterGroup) {
	k := rg.Group("/kite")
	k.GET("/login", h.Login)
	k.GET("/callback", h.Callback)
	k.GET("/status", h.Status)
}

// Login returns the login URL, or redirects to it with ?redirect=true.
func (h *KiteHandler) Login(c *gin.Context) {
	loginURL, err := h.uc.LoginURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if redirect, _ := strconv.ParseBool(c.Query("redirect")); redirect {
		c.Redirect(http.StatusFound, loginURL)
		return
	}
	c.JSON(http.StatusOK, dto.LoginURLResponse{LoginURL: loginURL})
}

func (h *KiteHandler) Callback(c *gin.Context) {
	session, err := h.uc.HandleCallback(c.Request.Context(), c.Query("request_token"), c.Query("state"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CallbackResponse{Status: "authenticated", UserID: session.UserID})
}

func (h *KiteHandler) Status(c *gin.Context) {
	status, err := h.uc.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		Authenticated: status.Authenticated,
		IssuedAt:      status.IssuedAt,
		ExpiresAt:     status.ExpiresAt,
	})
}

func respondError(c *gin.Context, err error) {
	var apiErr *usecase.APIError
	switch {
	case errors.Is(err, usecase.ErrMissingRequestToken):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing request_token parameter"})
	case usecase.IsAuthError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotConfigured), errors.Is(err, usecase.ErrStorageNotConfigured):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &apiErr):
		slog.Warn("kite api rejected the request", "status", apiErr.StatusCode, "error_type", apiErr.ErrorType)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: apiErr.Message})
	default:
		slog.Error("kite request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}
