package scanner

import "errors"

// ErrNotDirectory is returned by ScanDir when the reports path is a file.
var ErrNotDirectory = errors.New("not a directory")
