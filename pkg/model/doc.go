// Package model holds the slider configuration: a network of cell.Cell
// values wired with cross-cell validation rules.
//
// Construction merges caller Overrides onto the immutable Defaults record
// and validates every initial value in a fixed order (see New). After
// that, every write goes through the owning cell's validator, so the
// following always hold:
//
//   - MinValue <= MaxValue
//   - Step >= 1
//   - HasDefaultValues and LimitsDisplayed are never both true
//   - handle values are step-aligned and inside [MinValue, MaxValue], or
//     valid label indices in default-values mode
//   - in single-handle mode RightHandleValue is pinned to the upper bound
//
// Changing MinValue, MaxValue, Step, IsRange, HasDefaultValues or
// DefaultValues re-validates both handles (left, right, left).
package model
