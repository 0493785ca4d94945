package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testRecord struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Amount  int       `json:"amount"`
	Created time.Time `json:"created"`
}

func setupDBStore(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	s, err := NewDB(db)
	require.NoError(t, err)
	return s
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemory(),
		"db":     setupDBStore(t),
	}
}

func TestReadMissingKeyReturnsEmptyCollection(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			records, err := ReadCollection[testRecord](context.Background(), s, "labrise_cars_none")
			require.NoError(t, err)
			assert.Empty(t, records)
			assert.NotNil(t, records)
		})
	}
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	seed := make([]testRecord, 0, 120)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		seed = append(seed, testRecord{
			ID:      fmt.Sprintf("rec-%03d", i),
			Name:    fmt.Sprintf("record %d", i),
			Amount:  i * 500,
			Created: base.Add(time.Duration(i) * time.Minute),
		})
	}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := CarsKey("biz-1")

			require.NoError(t, WriteCollection(ctx, s, key, seed))

			got, err := ReadCollection[testRecord](ctx, s, key)
			require.NoError(t, err)
			require.Len(t, got, len(seed))
			for i := range seed {
				assert.Equal(t, seed[i].ID, got[i].ID)
				assert.Equal(t, seed[i].Name, got[i].Name)
				assert.Equal(t, seed[i].Amount, got[i].Amount)
				assert.True(t, seed[i].Created.Equal(got[i].Created))
			}
		})
	}
}

func TestOverwriteReplacesWholeCollection(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := QueueKey("biz-1")

			require.NoError(t, WriteCollection(ctx, s, key, []testRecord{{ID: "a"}, {ID: "b"}}))
			require.NoError(t, WriteCollection(ctx, s, key, []testRecord{{ID: "c"}}))

			got, err := ReadCollection[testRecord](ctx, s, key)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "c", got[0].ID)
		})
	}
}

func TestCorruptValueYieldsTypedError(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := ServicesKey("biz-1")

			require.NoError(t, s.Put(ctx, key, []byte(`{"not":"an array"`)))

			_, err := ReadCollection[testRecord](ctx, s, key)
			require.Error(t, err)
			assert.True(t, IsCorrupt(err))

			var ce *CorruptError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, key, ce.Key)
		})
	}
}

func TestDeleteRemovesCollection(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := StaffKey("biz-1")

			require.NoError(t, WriteCollection(ctx, s, key, []testRecord{{ID: "a"}}))
			require.NoError(t, s.Delete(ctx, key))

			_, ok, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestCollectionKeysArePartitioned(t *testing.T) {
	assert.Equal(t, "labrise_cars_b1", CarsKey("b1"))
	assert.Equal(t, "labrise_queue_b1", QueueKey("b1"))
	assert.Equal(t, "labrise_service_history_b1", HistoryKey("b1"))
	assert.NotEqual(t, CarsKey("b1"), CarsKey("b2"))
	assert.Equal(t, "labrise_businesses", BusinessesKey)
}
