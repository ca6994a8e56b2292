package orm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func count(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := On(db).Model(&widget{}).Count()
	require.NoError(t, err)
	return n
}

func TestTransaction_Commit(t *testing.T) {
	db := openDB(t)

	err := On(db).Transaction(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&widget{Name: "a"}).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count(t, db))
}

func TestTransaction_RollbackOnError(t *testing.T) {
	db := openDB(t)
	boom := errors.New("boom")

	err := On(db).Transaction(context.Background(), func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&widget{Name: "a"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, count(t, db))
}

func TestTransaction_RollbackOnPanic(t *testing.T) {
	db := openDB(t)

	assert.Panics(t, func() {
		_ = On(db).Transaction(context.Background(), func(tx *gorm.DB) error {
			tx.Create(&widget{Name: "a"})
			panic("boom")
		})
	})
	assert.EqualValues(t, 0, count(t, db))
}

func TestCreateIgnore_SkipsDuplicateKey(t *testing.T) {
	db := openDB(t)

	n, err := On(db).CreateIgnore(&widget{ID: 1, Name: "a"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = On(db).CreateIgnore(&widget{ID: 1, Name: "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	var w widget
	require.NoError(t, On(db).Where("id = ?", 1).First(&w))
	assert.Equal(t, "a", w.Name)
	assert.EqualValues(t, 1, count(t, db))
}

func TestCache_ServesSecondReadFromStore(t *testing.T) {
	db := openDB(t)
	cache.Use(cache.NewMemory())
	t.Cleanup(func() { cache.Use(cache.NewMemory()) })

	require.NoError(t, On(db).Create(&widget{Name: "a"}))

	var first []widget
	require.NoError(t, On(db).Cache("widgets", time.Minute, &first))
	require.Len(t, first, 1)

	require.NoError(t, On(db).Create(&widget{Name: "b"}))

	var second []widget
	require.NoError(t, On(db).Cache("widgets", time.Minute, &second))
	assert.Len(t, second, 1)
}

func TestIsNotFound(t *testing.T) {
	db := openDB(t)

	var w widget
	err := On(db).Where("id = ?", 99).First(&w)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}
