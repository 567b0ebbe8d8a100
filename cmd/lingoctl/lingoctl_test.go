package main

import (
	"bytes"
	"encoding/json"
	"multilingo/domain/analyzer"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestAnalyzeCommand(t *testing.T) {
	req := require.New(t)

	out := execute(t, "analyze", "racecar")

	req.Contains(out, "true")
	req.Contains(out, analyzer.Hash("racecar"))
	req.Contains(out, `"r" (2)`)
}

func TestClassifyCommand(t *testing.T) {
	req := require.New(t)

	out := execute(t, "classify", "translate hello to spanish")

	req.Contains(out, "translate")
	req.Contains(out, "es")
	req.Contains(out, "hello")
}

func TestLanguagesCommand(t *testing.T) {
	out := execute(t, "languages")

	require.Contains(t, out, "Spanish")
	require.Contains(t, out, "languages")
}

func TestDumpRecords(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	record := analyzer.NewRecord("hello world", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	bytesValue, err := json.Marshal(record)
	req.NoError(err)
	req.NoError(db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte("string:"+record.ID), bytesValue); err != nil {
			return err
		}
		return txn.Set([]byte("string:broken"), []byte("{"))
	}))

	var out bytes.Buffer
	req.NoError(dumpRecords(&out, db, "string:"))

	req.Contains(out.String(), "hello world")
	req.Contains(out.String(), "2025-03-01 10:00:00")
	req.Contains(out.String(), "Error unmarshaling key string:broken")
}
