// Package cell provides the validated observable value used by the slider
// core.
//
// A Cell holds one value that is always the output of its validator. Writes
// go through Set, which validates the candidate, stores the result and
// synchronously notifies subscribers in subscription order:
//
//	step := cell.New(1.0, func(v float64) (float64, error) {
//	    if v < 1 {
//	        return 1, nil
//	    }
//	    return v, nil
//	})
//	sub := step.Subscribe(func(v float64) { fmt.Println("step", v) })
//	step.Set(0.5) // prints "step 1"
//	step.Unsubscribe(sub)
//
// # Rejection
//
// A validator that returns an error rejects the write. The value is left
// untouched, no subscriber runs, a warning is logged and Set returns a
// *RejectedError. Callers that do not care may ignore the return value and
// re-read Get.
//
// # Re-entrancy
//
// Validators and subscribers may write other cells (and, within limits, the
// same cell). Nesting deeper than MaxReentrancy on a single cell is rejected
// with ErrReentrancy.
//
// Cells are not safe for concurrent use. Each slider is owned by a single
// goroutine.
package cell
