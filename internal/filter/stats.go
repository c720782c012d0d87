package filter

import (
	"math/big"
	"slices"
)

// Summary holds every statistic for one snapshot of the buffer.
// SignalOK is false when the signal percentage is undefined: the samples vary
// around a zero mean, or the ratio does not fit in an int64.
type Summary struct {
	Count            int   `json:"count"`
	Capacity         int   `json:"capacity"`
	Minimum          int64 `json:"minimum"`
	Maximum          int64 `json:"maximum"`
	Mean             int64 `json:"mean"`
	Median           int64 `json:"median"`
	Stdev            int64 `json:"stdev"`
	SignalPercentage int64 `json:"signal_percentage"`
	SignalOK         bool  `json:"signal_ok"`
}

func (b *Buffer) Maximum() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return slices.Max(values), nil
}

func (b *Buffer) Minimum() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return slices.Min(values), nil
}

// Mean is the average rounded half up to an integer. The sum is taken at one
// decimal digit of precision before rounding.
func (b *Buffer) Mean() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return mean(values), nil
}

// Median sorts a copy of the samples. For an even count it is the rounded
// average of the two central values.
func (b *Buffer) Median() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return median(values), nil
}

// Stdev is the population standard deviation around the rounded mean. It
// returns ErrOverflow when the samples span nearly the whole int64 range.
func (b *Buffer) Stdev() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return stdev(values, mean(values))
}

// SignalPercentage is the standard deviation relative to the mean, as a
// percentage rounded once at one decimal digit. A noiseless buffer reports 100.
func (b *Buffer) SignalPercentage() (int64, error) {
	values := b.Values()
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	m := mean(values)
	sd, err := stdev(values, m)
	if err != nil {
		return 0, err
	}
	return signalPercentage(sd, m)
}

func (b *Buffer) Summarize() (Summary, error) {
	values := b.Values()
	if len(values) == 0 {
		return Summary{Capacity: b.size}, ErrEmpty
	}
	m := mean(values)
	sd, err := stdev(values, m)
	if err != nil {
		return Summary{Capacity: b.size}, err
	}
	s := Summary{
		Count:    len(values),
		Capacity: b.size,
		Minimum:  slices.Min(values),
		Maximum:  slices.Max(values),
		Mean:     m,
		Median:   median(values),
		Stdev:    sd,
	}
	sp, err := signalPercentage(sd, m)
	if err == nil {
		s.SignalPercentage = sp
		s.SignalOK = true
	}
	return s, nil
}

// Intermediates are big.Int: scaled sums of int64 samples exceed 64 bits.

func mean(values []int64) int64 {
	sum := new(big.Int)
	for _, v := range values {
		sum.Add(sum, big.NewInt(v))
	}
	sum.Mul(sum, big.NewInt(scale))
	// Always between the minimum and maximum sample.
	return roundHalfUp(floorDiv(sum, big.NewInt(int64(len(values)))), scale).Int64()
}

// median sorts values in place; callers pass their own copy.
func median(values []int64) int64 {
	slices.Sort(values)
	mid := (len(values) - 1) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	pair := new(big.Int).Add(big.NewInt(values[mid]), big.NewInt(values[mid+1]))
	pair.Mul(pair, big.NewInt(scale))
	pair.Quo(pair, big.NewInt(2))
	return roundHalfUp(pair, scale).Int64()
}

func stdev(values []int64, m int64) (int64, error) {
	sum := new(big.Int)
	mu := big.NewInt(m)
	d := new(big.Int)
	for _, v := range values {
		d.Sub(big.NewInt(v), mu)
		sum.Add(sum, d.Mul(d, d))
	}
	sum.Mul(sum, big.NewInt(scale*scale))
	sum.Div(sum, big.NewInt(int64(len(values))))
	return toInt64(roundHalfUp(sum.Sqrt(sum), scale))
}

func signalPercentage(sd, m int64) (int64, error) {
	if sd == 0 {
		return 100, nil
	}
	if m == 0 {
		return 0, ErrZeroMean
	}
	ratio := new(big.Int).Mul(big.NewInt(sd), big.NewInt(1000))
	return toInt64(roundHalfUp(floorDiv(ratio, big.NewInt(m)), scale))
}
