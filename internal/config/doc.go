// Package config loads the slider command line configuration.
//
// The configuration is a JSON or YAML file, picked by extension. Every
// field is optional; missing fields keep the defaults from New.
//
// # Configuration File Structure
//
//	server:
//	  addr: ":8080"
//	  metricsPath: /metrics
//	  readLimit: 4096
//	  title: Range slider
//	slider:
//	  isRange: true
//	  minValue: 0
//	  maxValue: 100
//	  step: 5
//	  defaultValues: [XS, S, M, L, XL]
//	scale:
//	  densityCapped: false
//	log:
//	  level: info
//	  format: text
//
// Unknown keys are rejected.
//
// # Hot Reload
//
// Watch follows the file with fsnotify and hands every successfully
// loaded revision to a callback. A revision that fails to load is logged
// and skipped; the previous one stays in effect.
package config
