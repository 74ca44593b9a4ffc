// Package errors provides structured, actionable error messages for the
// slider command line.
//
// Each error has a code that maps to a short message, a longer detail and
// a category. Config errors can point at the offending line of the config
// file, which is printed with a few lines of context:
//
//	err := errors.New("E102").
//	    WithLocation("slider.yaml", 4, 0).
//	    WithSuggestion("Use a number for step")
//
//	errors.PrintError(err)
//	// ERROR E102: Invalid config value
//	//
//	//   slider.yaml:4
//	//
//	//        2 │ slider:
//	//        3 │   minValue: 0
//	//   →    4 │   step: fast
//	//        5 │ log:
//	//
//	//   Hint: Use a number for step
package errors
