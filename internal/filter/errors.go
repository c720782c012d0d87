package filter

import "errors"

var (
	ErrInvalidCapacity = errors.New("capacity must be > 0")
	ErrEmpty           = errors.New("no samples in buffer")
	// ErrZeroMean is returned by SignalPercentage when the samples vary
	// around a mean of zero.
	ErrZeroMean = errors.New("mean is zero")
	ErrOverflow = errors.New("statistic out of int64 range")
)
