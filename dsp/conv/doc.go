// Package conv provides discrete linear convolution of float64 sequences.
//
// Two strategies compute the same result with different memory access patterns:
//
//   - Direct: nested loop, one product accumulated per inner step
//   - Windowed: the kernel is scaled by one input sample and added into a
//     contiguous output window with vector kernels
//
// Both strategies accumulate in the same order and never fuse multiply and add,
// so their outputs are bit-identical. They exist side by side so the two access
// patterns can be benchmarked against each other.
//
// # Usage
//
//	result, err := conv.Direct(signal, kernel)
//	result, err := conv.Windowed(signal, kernel)
//	result, err := conv.Convolve(signal, kernel, conv.StrategyWindowed)
//
// To reuse an output buffer:
//
//	n, err := conv.OutputLen(len(signal), len(kernel))
//	dst := make([]float64, n)
//	err = conv.DirectTo(dst, signal, kernel)
//
// # Empty inputs
//
// If both inputs are empty, [ErrInvalidLength] is returned and nothing is
// allocated. If exactly one input is empty, the result is a zero-filled slice
// of length len(other)-1, since no products contribute.
package conv
