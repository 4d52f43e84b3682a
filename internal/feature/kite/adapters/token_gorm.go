// Package adapters はkiteフィーチャーの永続化と外部APIクライアントを提供します。
package adapters

import (
	"errors"
	"fmt"
	"time"

	"stock_watchlist/internal/feature/kite/domain/entity"
	"stock_watchlist/internal/feature/kite/usecase"
	"stock_watchlist/internal/platform/db"

	"gorm.io/gorm"
)

// TableNames lists the tables owned by the kite feature.
var TableNames = []string{"kite_tokens"}

type tokenModel struct {
	ID          int64     `gorm:"primaryKey"`
	AccessToken string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (tokenModel) TableName() string { return "kite_tokens" }

func (m tokenModel) toEntity() *entity.Token {
	return &entity.Token{ID: m.ID, AccessToken: m.AccessToken, CreatedAt: m.CreatedAt}
}

// Migrate creates the kite_tokens table.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&tokenModel{}); err != nil {
		return fmt.Errorf("failed to migrate kite tables: %w", err)
	}
	return nil
}

type tokenReader struct {
	db *gorm.DB
}

var _ usecase.TokenReader = (*tokenReader)(nil)

func NewTokenReader(conn *gorm.DB) *tokenReader {
	return &tokenReader{db: conn}
}

// GetLatestToken は最新のトークンを返します。同時刻の行は ID の大きい方を優先します。
func (r *tokenReader) GetLatestToken() (*entity.Token, error) {
	var m tokenModel
	err := r.db.Order("created_at DESC").Order("id DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

type tokenWriter struct {
	db *gorm.DB
}

var _ usecase.TokenWriter = (*tokenWriter)(nil)

func NewTokenWriter(conn *gorm.DB) *tokenWriter {
	return &tokenWriter{db: conn}
}

// SaveToken appends a row; older tokens are kept.
func (w *tokenWriter) SaveToken(accessToken string) (*entity.Token, error) {
	m := tokenModel{AccessToken: accessToken, CreatedAt: w.db.NowFunc()}
	if err := w.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// Binder attaches the token reader and writer to a pinned connection or transaction.
var Binder = db.Binder[usecase.TokenReader, usecase.TokenWriter]{
	Reader: func(conn *gorm.DB) usecase.TokenReader { return NewTokenReader(conn) },
	Writer: func(conn *gorm.DB) usecase.TokenWriter { return NewTokenWriter(conn) },
}

// NewHandler builds the kite token handler on a shared Database.
func NewHandler(database *db.Database) *db.Handler[usecase.TokenReader, usecase.TokenWriter] {
	return db.NewHandler(database, "kite_tokens", Binder)
}
