package database

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cuaderno/entities"
)

func TestOpenMigratesAllTables(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "boot.db"))
	require.NoError(t, err)
	defer Close(db)

	for _, m := range entities.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Vehicle{Plate: "1234ABC", Type: entities.VehicleVan}).Error)
	require.NoError(t, Close(db))

	db, err = Open(path)
	require.NoError(t, err)
	defer Close(db)
	var n int64
	require.NoError(t, db.Model(&entities.Vehicle{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLookupMissWritesNothingToStdout(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	db, err := Open(filepath.Join(t.TempDir(), "boot.db"))
	require.NoError(t, err)
	defer Close(db)
	var v entities.Vehicle
	err = db.Where("plate = ?", "NOPE").Take(&v).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	os.Stdout = stdout
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}

func TestLoggerSkipsMissesButKeepsErrors(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), sql, gorm.ErrInvalidData)
	assert.Contains(t, buf.String(), "SELECT 1")
}
