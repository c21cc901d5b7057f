// internal/app/system/csvutil/download.go
package csvutil

import (
	"encoding/csv"
	"net/http"
	"net/url"
)

// utf8BOM lets spreadsheet programs detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewDownload writes the attachment headers and BOM for filename and
// returns a CRLF csv.Writer on w. The caller writes rows and flushes.
func NewDownload(w http.ResponseWriter, filename string) (*csv.Writer, error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(utf8BOM); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw, nil
}
