package repositories

import (
	"context"
	"log/slog"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/errors"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, limit *int) *StringRepository {
	t.Helper()
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	req.NoError(err)
	t.Cleanup(func() { _ = writer.Close() })

	return NewStringRepository(db, writer, logs.GetLoggerFromLevel(slog.LevelError), limit)
}

func saveAll(t *testing.T, repo *StringRepository, values ...string) {
	t.Helper()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, value := range values {
		require.NoError(t, repo.Save(context.Background(), analyzer.NewRecord(value, at.Add(time.Duration(i)*time.Minute))))
	}
}

func TestStringRepository_SaveAndFind(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, nil)
	record := analyzer.NewRecord("racecar", time.Now().UTC().Truncate(time.Second))

	req.NoError(repo.Save(context.Background(), record))
	fetched, err := repo.FindByValue(context.Background(), "racecar")

	req.NoError(err)
	req.Equal(record.ID, fetched.ID)
	req.Equal(record.Properties, fetched.Properties)
	req.True(record.CreatedAt.Equal(fetched.CreatedAt))
}

func TestStringRepository_SaveDuplicate(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, nil)
	first := analyzer.NewRecord("level", time.Now().UTC())
	req.NoError(repo.Save(context.Background(), first))

	// When the same value is saved again later
	err := repo.Save(context.Background(), analyzer.NewRecord("level", time.Now().UTC().Add(time.Hour)))

	// Then the first record is kept
	req.ErrorIs(err, errors.ErrStringAlreadyExists)
	fetched, err := repo.FindByValue(context.Background(), "level")
	req.NoError(err)
	req.True(first.CreatedAt.Equal(fetched.CreatedAt))
}

func TestStringRepository_FindMissing(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, nil)

	_, err := repo.FindByValue(context.Background(), "ghost")

	req.ErrorIs(err, errors.ErrStringNotFound)
}

func TestStringRepository_List(t *testing.T) {
	repo := newTestRepository(t, nil)
	saveAll(t, repo, "racecar", "hello world", "a", "noon", "the quick brown fox")

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{name: "no filter keeps insertion order", filter: domain.Filter{},
			want: []string{"racecar", "hello world", "a", "noon", "the quick brown fox"}},
		{name: "palindromes", filter: domain.Filter{IsPalindrome: lo.ToPtr(true)},
			want: []string{"racecar", "a", "noon"}},
		{name: "length window", filter: domain.Filter{MinLength: lo.ToPtr(4), MaxLength: lo.ToPtr(11)},
			want: []string{"racecar", "hello world", "noon"}},
		{name: "word count", filter: domain.Filter{WordCount: lo.ToPtr(2)},
			want: []string{"hello world"}},
		{name: "contains character", filter: domain.Filter{ContainsCharacter: lo.ToPtr("o")},
			want: []string{"hello world", "noon", "the quick brown fox"}},
		{name: "nothing matches", filter: domain.Filter{MinLength: lo.ToPtr(100)}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			records, err := repo.List(context.Background(), tt.filter)

			req.NoError(err)
			req.Equal(tt.want, valuesOf(records))
		})
	}
}

func TestStringRepository_ListLimit(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, lo.ToPtr(2))
	saveAll(t, repo, "one", "two", "three")

	records, err := repo.List(context.Background(), domain.Filter{})

	req.NoError(err)
	req.Equal([]string{"one", "two"}, valuesOf(records))
}

func TestStringRepository_Delete(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, nil)
	saveAll(t, repo, "hello world")

	req.NoError(repo.Delete(context.Background(), "hello world"))

	_, err := repo.FindByValue(context.Background(), "hello world")
	req.ErrorIs(err, errors.ErrStringNotFound)
	req.ErrorIs(repo.Delete(context.Background(), "hello world"), errors.ErrStringNotFound)
	records, total, err := repo.Search(context.Background(), "hello", 10)
	req.NoError(err)
	req.Empty(records)
	req.Zero(total)
}

func TestStringRepository_Search(t *testing.T) {
	req := require.New(t)
	repo := newTestRepository(t, nil)
	saveAll(t, repo, "Hello world", "hello there", "goodbye world", "racecar")

	records, total, err := repo.Search(context.Background(), "hello", 10)

	req.NoError(err)
	req.Equal(uint64(2), total)
	req.ElementsMatch([]string{"Hello world", "hello there"}, valuesOf(records))

	// All terms must match
	records, total, err = repo.Search(context.Background(), "hello world", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Equal([]string{"Hello world"}, valuesOf(records))

	// The page is capped but the total is not
	records, total, err = repo.Search(context.Background(), "world", 1)
	req.NoError(err)
	req.Equal(uint64(2), total)
	req.Len(records, 1)
}

func TestStringRepository_Ping(t *testing.T) {
	require.NoError(t, newTestRepository(t, nil).Ping())
}

func valuesOf(records []domain.StringRecord) []string {
	if len(records) == 0 {
		return nil
	}
	values := make([]string, 0, len(records))
	for _, r := range records {
		values = append(values, r.Value)
	}
	return values
}
