package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/huangsam/svnstat/schema"
)

// WriteMonthCSV renders table as ';'-separated text: the fixed header, then
// one row per author in the order the authors first appeared.
func WriteMonthCSV(w io.Writer, table *schema.MonthTable) error {
	header := make([]string, len(schema.MonthColumns))
	for i, col := range schema.MonthColumns {
		header[i] = string(col)
	}

	return writeCSVWithHeader(w, schema.CSVDelimiter, header, func(cw *csv.Writer) error {
		for _, row := range table.Rows() {
			if err := cw.Write(row.Record()); err != nil {
				return err
			}
		}
		return nil
	})
}
