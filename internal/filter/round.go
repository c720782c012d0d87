package filter

import "math/big"

// scale is the fixed-point factor: one decimal digit.
const scale = 10

var bigOne = big.NewInt(1)

// roundHalfUp divides n by d and rounds halves toward positive infinity.
func roundHalfUp(n *big.Int, d int64) *big.Int {
	if d <= 0 {
		panic("filter: non-positive divisor")
	}
	q, r := new(big.Int), new(big.Int)
	q.DivMod(n, big.NewInt(d), r)
	if r.Cmp(big.NewInt(d/2)) >= 0 {
		q.Add(q, bigOne)
	}
	return q
}

// floorDiv returns floor(n/d). big.Int.Div is Euclidean, which only agrees
// with floor for a positive divisor.
func floorDiv(n, d *big.Int) *big.Int {
	if d.Sign() < 0 {
		n = new(big.Int).Neg(n)
		d = new(big.Int).Neg(d)
	}
	return new(big.Int).Div(n, d)
}

func toInt64(n *big.Int) (int64, error) {
	if !n.IsInt64() {
		return 0, ErrOverflow
	}
	return n.Int64(), nil
}
