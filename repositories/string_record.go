package repositories

import (
	"cmp"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/errors"
	"slices"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

var _ contract.StringStore = (*StringRepository)(nil)

const (
	stringPrefix = "string:"
	valueField   = "value"
	idField      = "_id"
)

// StringRepository keeps records in BadgerDB and indexes their values in Bluge.
// Badger is the source of truth: the index only resolves search terms to ids.
type StringRepository struct {
	db     *badger.DB
	writer *bluge.Writer
	log    *slog.Logger
	limit  *int
}

func NewStringRepository(db *badger.DB, writer *bluge.Writer, log *slog.Logger, limit *int) *StringRepository {
	return &StringRepository{db: db, writer: writer, log: log, limit: limit}
}

// Save stores a new record under "string:{sha256}".
// A value already present returns ErrStringAlreadyExists and leaves the stored record untouched.
func (r *StringRepository) Save(ctx context.Context, record domain.StringRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := recordKey(record.ID)
	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch {
		case err == nil:
			return errors.ErrStringAlreadyExists
		case !stderrors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, bytes)
	})
	if err != nil {
		return err
	}
	doc := bluge.NewDocument(record.ID).AddField(bluge.NewTextField(valueField, record.Value))
	if err = r.writer.Update(doc.ID(), doc); err != nil {
		r.log.Error("Unable to index string", "id", record.ID, "error", err)
	}
	return nil
}

func (r *StringRepository) FindByValue(ctx context.Context, value string) (domain.StringRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.StringRecord{}, err
	}
	return r.findByID(analyzer.Hash(value))
}

func (r *StringRepository) findByID(id string) (domain.StringRecord, error) {
	var record domain.StringRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrStringNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	return record, err
}

// List scans every record and keeps the ones matching filter, oldest first.
// The configured limit caps the result.
func (r *StringRepository) List(ctx context.Context, filter domain.Filter) ([]domain.StringRecord, error) {
	var records []domain.StringRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(stringPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record domain.StringRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			if filter.Match(record) {
				records = append(records, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b domain.StringRecord) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	if r.limit != nil && len(records) > *r.limit {
		r.log.Debug(fmt.Sprintf("Maximum of %d strings reached", *r.limit))
		records = records[:*r.limit]
	}
	return records, nil
}

func (r *StringRepository) Delete(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := analyzer.Hash(value)
	key := recordKey(id)
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrStringNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}
	if err = r.writer.Delete(bluge.Identifier(id)); err != nil {
		r.log.Error("Unable to remove string from index", "id", id, "error", err)
	}
	return nil
}

// Search matches every term against the indexed values and loads the hits from Badger.
// The total counts all matching documents, not only the returned page.
func (r *StringRepository) Search(ctx context.Context, terms string, limit int) ([]domain.StringRecord, uint64, error) {
	if limit <= 0 {
		limit = lo.FromPtrOr(r.limit, 10)
	}
	reader, err := r.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewMatchQuery(terms).
		SetField(valueField).
		SetOperator(bluge.MatchQueryOperatorAnd)
	request := bluge.NewTopNSearch(limit, query).WithStandardAggregations()
	matches, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search index: %w", err)
	}

	var ids []string
	next, err := matches.Next()
	for err == nil && next != nil {
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			if field == idField {
				ids = append(ids, string(value))
				return false
			}
			return true
		})
		if err != nil {
			break
		}
		next, err = matches.Next()
	}
	if err != nil {
		return nil, 0, fmt.Errorf("iterate search results: %w", err)
	}

	records := make([]domain.StringRecord, 0, len(ids))
	for _, id := range ids {
		record, err := r.findByID(id)
		if stderrors.Is(err, errors.ErrStringNotFound) {
			r.log.Warn("Indexed string missing from store", "id", id)
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, matches.Aggregations().Count(), nil
}

// Ping checks that the store answers a read transaction.
func (r *StringRepository) Ping() error {
	return r.db.View(func(txn *badger.Txn) error { return nil })
}

func recordKey(id string) []byte {
	return []byte(stringPrefix + id)
}
