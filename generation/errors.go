package generation

import "errors"

var (
	// ErrIncorrectMapDimensions is returned by constructors when width or height is zero
	ErrIncorrectMapDimensions = errors.New("incorrect map dimensions")
	// ErrInvalidConfig is returned by constructors for inconsistent configuration values
	ErrInvalidConfig = errors.New("invalid generator config")
	// ErrTooSmallBSPAreaToSplit is returned when a partition cannot hold two children
	// larger than the minimum room size in either orientation
	ErrTooSmallBSPAreaToSplit = errors.New("BSP area too small to split")
	// ErrTooManyBSPSplitRetries is returned when no split coordinate was found
	// within the attempt budget even though the area is large enough
	ErrTooManyBSPSplitRetries = errors.New("too many BSP split retries")
	// ErrRoomsDoNotFit is returned when rejection sampling cannot place the requested rooms
	ErrRoomsDoNotFit = errors.New("rooms do not fit the map")
	// ErrNoOpenArea is returned when every attempt ended without any open ground
	ErrNoOpenArea = errors.New("no open area generated")
)
