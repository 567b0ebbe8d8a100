package main

import (
	"encoding/json"
	"fmt"
	"io"
	"multilingo/domain"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var dbPath, prefix string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump stored string records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(dbPath)
			if err != nil {
				return fmt.Errorf("error while opening Badger: %w", err)
			}
			defer db.Close()
			return dumpRecords(cmd.OutOrStdout(), db, prefix)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", database.DefaultPath, "Path to badger DB")
	cmd.Flags().StringVar(&prefix, "prefix", "string:", "Prefix to scan")
	return cmd
}

func dumpRecords(w io.Writer, db *badger.DB, prefix string) error {
	table := newTable(w, "Key", "Value", "Length", "Words", "Palindrome", "Created")
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var record domain.StringRecord
				if err := json.Unmarshal(v, &record); err != nil {
					// keep going, one bad entry should not hide the rest
					fmt.Fprintf(w, "Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				table.Append([]string{
					string(item.KeyCopy(nil)),
					record.Value,
					strconv.Itoa(record.Properties.Length),
					strconv.Itoa(record.Properties.WordCount),
					strconv.FormatBool(record.Properties.IsPalindrome),
					record.CreatedAt.Format(time.DateTime),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.ERROR)
	return badger.Open(opts)
}
