// Package slider wires a model.Config, a state.State and a view.View into
// one widget and exposes it through a small facade.
//
// The presenter logic lives in New: gestures write normalized positions
// into the State, State positions are converted to domain values and
// written to the Config, and every Config change is pushed back to the
// View and the State. A sync flag keeps the State subscribers from feeding
// the positions they were just given back into the Config.
//
// Typed access goes through Key values:
//
//	s := slider.New(container, model.Overrides{IsRange: model.Bool(true)})
//	slider.Set(s, slider.LeftHandleValue, 40)
//	slider.Subscribe(s, slider.RightHandleValue, func(v float64) { ... })
//
// Wire and CLI callers that only know option names use Value, SetValue
// and SubscribeAny instead.
package slider
