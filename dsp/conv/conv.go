package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrInvalidLength   = errors.New("conv: invalid input length")
	ErrLengthMismatch  = errors.New("conv: buffer length mismatch")
	ErrUnknownStrategy = errors.New("conv: unknown strategy")
	ErrUnknownMode     = errors.New("conv: unknown mode")
)

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// OutputLen returns the length of the full linear convolution of sequences
// with nxa and nxb samples. Both lengths empty, or either negative, is
// rejected with ErrInvalidLength.
func OutputLen(nxa, nxb int) (int, error) {
	if nxa < 0 || nxb < 0 {
		return 0, fmt.Errorf("%w: negative length (%d, %d)", ErrInvalidLength, nxa, nxb)
	}
	if nxa == 0 && nxb == 0 {
		return 0, fmt.Errorf("%w: both inputs empty", ErrInvalidLength)
	}
	return nxa + nxb - 1, nil
}

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// The outer loop runs over a and the inner loop over b, both in increasing
// index order. If exactly one input is empty the result is all zeros.
func Direct(a, b []float64) ([]float64, error) {
	n, err := OutputLen(len(a), len(b))
	if err != nil {
		return nil, err
	}

	result := make([]float64, n)
	directAccumulate(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) error {
	if err := checkDst(dst, a, b); err != nil {
		return err
	}

	clear(dst)
	directAccumulate(dst, a, b)
	return nil
}

// directAccumulate adds a*b into dst, which must already be zeroed.
func directAccumulate(dst, a, b []float64) {
	m := len(b)
	for i := 0; i < len(a); i++ {
		for j := 0; j < m; j++ {
			// Operand order matches vecmath.ScaleBlock, which keeps NaN
			// payloads identical. The conversion rounds the product, so no FMA is formed.
			dst[i+j] += float64(b[j] * a[i])
		}
	}
}

// Windowed performs linear convolution by adding the whole kernel, scaled by
// one input sample, into a sliding output window per step:
//
//	dst[i : i+len(b)] += a[i] * b
//
// Scaling and accumulation use element-wise vector kernels, so every output
// element sees the same sequence of roundings as in [Direct] and the two
// results are bit-identical.
func Windowed(a, b []float64) ([]float64, error) {
	n, err := OutputLen(len(a), len(b))
	if err != nil {
		return nil, err
	}

	result := make([]float64, n)
	windowedAccumulate(result, a, b)
	return result, nil
}

// WindowedTo performs windowed convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func WindowedTo(dst, a, b []float64) error {
	if err := checkDst(dst, a, b); err != nil {
		return err
	}

	clear(dst)
	windowedAccumulate(dst, a, b)
	return nil
}

func windowedAccumulate(dst, a, b []float64) {
	m := len(b)
	if m == 0 {
		return
	}

	temp := make([]float64, m)
	for i := 0; i < len(a); i++ {
		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

func checkDst(dst, a, b []float64) error {
	n, err := OutputLen(len(a), len(b))
	if err != nil {
		return err
	}
	if len(dst) != n {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, n, len(dst))
	}
	return nil
}

// Convolve performs linear convolution using the given strategy.
func Convolve(a, b []float64, s Strategy) ([]float64, error) {
	switch s {
	case StrategyDirect:
		return Direct(a, b)
	case StrategyWindowed:
		return Windowed(a, b)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
}

// ConvolveMode performs convolution with specified output mode.
// ModeSame and ModeValid require both inputs to be non-empty.
func ConvolveMode(a, b []float64, s Strategy, mode Mode) ([]float64, error) {
	switch mode {
	case ModeFull, ModeSame, ModeValid:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if mode != ModeFull && (len(a) == 0 || len(b) == 0) {
		return nil, fmt.Errorf("%w: mode %d needs non-empty inputs", ErrInvalidLength, int(mode))
	}

	full, err := Convolve(a, b, s)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeFull:
		return full
	case ModeSame:
		// Centre the result on the first input.
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		panic(fmt.Sprintf("conv: unhandled mode %d", int(mode)))
	}
}
