package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/bookroll/bookroll/pkg/reconciler"
	"github.com/bookroll/bookroll/pkg/records"
)

// renderRecords prints the merged view as a table, one row per record.
func renderRecords(w io.Writer, recs []records.Record) error {
	table := tablewriter.NewTable(w)
	table.Header("年級", "學期", "課程類別", "課程名稱", "適用班級",
		"教科書(優先1)", "出版社(1)", "教科書(優先2)", "uuid")

	for _, rec := range recs {
		if err := table.Append(
			rec.Grade,
			rec.Semester,
			rec.Category,
			rec.Course,
			rec.Classes.String(),
			rec.Books[0].Title,
			rec.Books[0].Publisher,
			rec.Books[1].Title,
			shortIdentity(rec.Identity),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// renderResult prints the merged table followed by warnings and the
// run summary.
func renderResult(w io.Writer, result *reconciler.Result) error {
	if err := renderRecords(w, result.Records); err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Fprintln(w, "warning:", warning)
	}
	fmt.Fprintln(w, result.Summary())
	return nil
}

// renderList prints a one-column table.
func renderList(w io.Writer, header string, values []string) error {
	table := tablewriter.NewTable(w)
	table.Header(header)
	for _, value := range values {
		if err := table.Append(value); err != nil {
			return err
		}
	}
	return table.Render()
}

// shortIdentity truncates minted identities so the table stays readable.
func shortIdentity(identity string) string {
	if len(identity) > 8 {
		return identity[:8]
	}
	return identity
}
