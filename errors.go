package docscore

import "errors"

var (
	// ErrUnsupportedFormat is returned when the declared file type has no
	// registered extractor. Surfaced before any extraction is attempted.
	ErrUnsupportedFormat = errors.New("docscore: unsupported document format")

	// ErrFileTooLarge is returned when the input exceeds Config.MaxFileSize.
	ErrFileTooLarge = errors.New("docscore: file too large")

	// ErrParseFailed is returned when the document cannot be opened or a
	// required structural element is malformed. The analysis aborts; there
	// is no partial report and no retry.
	ErrParseFailed = errors.New("docscore: document parsing failed")
)
