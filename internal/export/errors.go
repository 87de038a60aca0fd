package export

import (
	"errors"
	"fmt"
)

var errEmptyArtifact = errors.New("backend produced an empty artifact")

// CaptureError reports that a designated visual region could not be located
// or rasterized. Recoverable per section in the PDF shape, fatal for the
// single-capture PNG shape.
type CaptureError struct {
	Section string
	Err     error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Section, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// EncodingError reports that artifact serialization failed. Fatal for the
// current export attempt; no partial file is produced.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode artifact: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
