package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (E100-E119)

	"E100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The file given with --config does not exist.",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Config file could not be parsed",
		Detail:   "The config file is not valid JSON or YAML.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config field has a value outside its allowed range.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .json, .yaml or .yml.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Config watcher failed",
		Detail:   "The config file could not be watched for changes.",
	},

	// Server errors (E120-E139)

	"E120": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"E121": {
		Category: CategoryServer,
		Message:  "Address already in use",
		Detail:   "Another process is listening on the requested address.",
	},

	// CLI errors (E140-E159)

	"E140": {
		Category: CategoryCLI,
		Message:  "Output could not be written",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Terminal UI failed",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
