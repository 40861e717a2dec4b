package vision

import "errors"

// Validation failures detected before feature extraction starts. The
// transport layer maps each kind to its own status code, so they are
// exposed as sentinels for errors.Is.
var (
	ErrEmptyInput        = errors.New("empty image payload")
	ErrDecode            = errors.New("payload is not a decodable image")
	ErrUnsupportedFormat = errors.New("image cannot be normalized to an RGB layout")
	ErrTooSmall          = errors.New("image dimensions below minimum")
	ErrOversize          = errors.New("image payload exceeds the configured limit")
)
