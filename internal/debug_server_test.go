package internal

import (
	"encoding/json"
	"multilingo/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func TestDebugServer_ListsRecords(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	record := domain.StringRecord{
		ID:         "abc",
		Value:      "racecar",
		Properties: domain.Properties{Length: 7, WordCount: 1, IsPalindrome: true},
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	bytes, err := json.Marshal(record)
	req.NoError(err)
	req.NoError(db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("string:abc"), bytes)
	}))

	srv := NewDebugServer(db, 0, "/inspect", StringRecordMapper, func() map[string]any {
		return map[string]any{"Mode": "test"}
	})
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "racecar")
	req.Contains(rec.Body.String(), "2025-01-02 03:04:05")
	req.Contains(rec.Body.String(), "Mode: test")
}

func TestStringRecordMapper_FallsBackOnGarbage(t *testing.T) {
	row := StringRecordMapper("string:xyz", []byte("not json"))

	require.Equal(t, "Size: 8 bytes", row.Value)
}
