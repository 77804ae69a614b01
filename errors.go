package quadtree

import "errors"

// ErrInvalidWorldDimensions is returned by New when width or height is
// non-positive or not finite (NaN or +/-Inf). Precondition violations on
// bounding boxes passed to Insert/InsertChecked are not validated here: a NaN
// bounding box is a caller bug, not a recoverable error.
var ErrInvalidWorldDimensions = errors.New("quadtree: width and height must be finite and > 0")
