package db

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sidhant-sriv/rentease-api/config"
	"github.com/sidhant-sriv/rentease-api/models"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	lg := newGormLogger(&buf, gormlogger.Warn)
	query := func() (string, int64) { return "SELECT * FROM users WHERE email = 'a@b.com'", 0 }

	lg.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	lg.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "connection reset")
}

func TestLookupMissLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	DB, err := Connect(config.Database{Driver: "sqlite", URL: "file:lookup_miss?mode=memory&cache=shared"}, false)
	require.NoError(t, err)
	sqlDB, err := DB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, MakeMigration(DB, slog.New(slog.NewTextHandler(io.Discard, nil))))
	DB.Logger = newGormLogger(&buf, gormlogger.Warn)

	var u models.User
	err = DB.Where("email = ?", "nobody@x.com").First(&u).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())
}
