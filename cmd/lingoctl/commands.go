package main

import (
	"fmt"
	"io"
	"multilingo/domain/analyzer"
	"multilingo/domain/intent"
	"multilingo/domain/language"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text>",
		Short: "Compute the properties of a string",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.Join(args, " ")
			props := analyzer.Analyze(value)
			char, count := analyzer.MostCommon(value)

			table := newTable(cmd.OutOrStdout(), "Property", "Value")
			table.Append([]string{"length", strconv.Itoa(props.Length)})
			table.Append([]string{"word_count", strconv.Itoa(props.WordCount)})
			table.Append([]string{"unique_characters", strconv.Itoa(props.UniqueCharacters)})
			table.Append([]string{"is_palindrome", strconv.FormatBool(props.IsPalindrome)})
			table.Append([]string{"sha256_hash", props.SHA256Hash})
			if count > 0 {
				table.Append([]string{"most_common", fmt.Sprintf("%q (%d)", char, count)})
			}
			table.Render()
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <message>",
		Short: "Show the intent a chat message resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := newRouter()
			if err != nil {
				return err
			}
			in := router.Classify(strings.Join(args, " "))

			table := newTable(cmd.OutOrStdout(), "Field", "Value")
			table.Append([]string{"intent", string(in.Tag)})
			for _, name := range lo.Keys(in.Args) {
				table.Append([]string{name, in.Args[name]})
			}
			if in.Err != nil {
				table.Append([]string{"error", in.Err.Error()})
			}
			sortRows(table)
			table.Render()
			return nil
		},
	}
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			languages, err := language.Default()
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "Code", "Name")
			for _, l := range languages.All() {
				table.Append([]string{l.Code, language.Title(l.Name)})
			}
			table.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "%d languages\n", languages.Len())
			return nil
		},
	}
}

func newRouter() (*intent.Router, error) {
	languages, err := language.Default()
	if err != nil {
		return nil, err
	}
	return intent.NewRouter(languages)
}

// rowTable buffers rows so they can be ordered before rendering.
type rowTable struct {
	table *tablewriter.Table
	rows  [][]string
}

func (t *rowTable) Append(row []string) {
	t.rows = append(t.rows, row)
}

func (t *rowTable) Render() {
	t.table.AppendBulk(t.rows)
	t.table.Render()
}

func sortRows(t *rowTable) {
	// the intent row stays first
	if len(t.rows) < 2 {
		return
	}
	rest := t.rows[1:]
	sort.SliceStable(rest, func(i, j int) bool { return rest[i][0] < rest[j][0] })
}

func newTable(w io.Writer, header ...string) *rowTable {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return &rowTable{table: table}
}
