package report

import "errors"

// ErrExport wraps every failure of the workbook export.
var ErrExport = errors.New("xlsx export failed")
