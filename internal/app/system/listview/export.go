package listview

import "encoding/csv"

// Headers returns the header row for cols.
func Headers[T any](cols []Column[T]) []string {
	h := make([]string, len(cols))
	for i, c := range cols {
		h[i] = c.Header
	}
	return h
}

// WriteCSV writes the header row and one row per item, then flushes.
// Quoting follows encoding/csv.
func WriteCSV[T any](w *csv.Writer, items []T, cols []Column[T]) error {
	if err := w.Write(Headers(cols)); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for _, it := range items {
		for i, c := range cols {
			row[i] = c.Value(it)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
