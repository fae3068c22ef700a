package editor

import "errors"

var (
	ErrInsufficientTokens   = errors.New("insufficient tokens")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrGenerationFault      = errors.New("generation fault")
	ErrUnknownPreset        = errors.New("unknown preset")
	ErrInvalidSize          = errors.New("width and height must be positive")
	ErrHistoryNotFound      = errors.New("history item not found")
	ErrEmptyCatalog         = errors.New("catalog is empty")
	ErrUnknownReference     = errors.New("unknown reference kind")
	ErrClosed               = errors.New("editor closed")
)

// errNoChange aborts an update that would leave the state as it is.
var errNoChange = errors.New("no change")
