package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"multilingo/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

const DefaultPrefix = "string:"

type InspectRow struct {
	Key        string
	Value      string
	Length     string
	Words      string
	Palindrome string
	CreatedAt  string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// NewDebugServer serves an HTML view of the Badger keys under a prefix.
// The caller owns the returned server's lifecycle.
func NewDebugServer(db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) *http.Server {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	if mapper == nil {
		mapper = DefaultMapper
	}

	mux.HandleFunc("GET "+endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = DefaultPrefix
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	return &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func DefaultMapper(key string, val []byte) InspectRow {
	return InspectRow{
		Key:        key,
		Value:      "Size: " + strconv.Itoa(len(val)) + " bytes",
		Length:     "-",
		Words:      "-",
		Palindrome: "-",
		CreatedAt:  "--:--:--",
	}
}

// StringRecordMapper decodes a stored string record, falling back to the raw view.
func StringRecordMapper(key string, val []byte) InspectRow {
	row := DefaultMapper(key, val)
	var record domain.StringRecord
	if err := json.Unmarshal(val, &record); err != nil {
		return row
	}
	if len(row.Key) > len(DefaultPrefix)+12 {
		row.Key = row.Key[:len(DefaultPrefix)+12]
	}
	row.Value = record.Value
	row.Length = strconv.Itoa(record.Properties.Length)
	row.Words = strconv.Itoa(record.Properties.WordCount)
	row.Palindrome = strconv.FormatBool(record.Properties.IsPalindrome)
	row.CreatedAt = record.CreatedAt.Format(time.DateTime)
	return row
}
