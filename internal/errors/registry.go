package errors

import "slices"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryScheduler,
		Message:  "Possible infinite update loop",
		Detail:   "A watcher was re-queued more times than the scheduler allows in a single flush.",
	},
	"R002": {
		Category: CategoryRuntime,
		Message:  "Watcher getter failed",
		Detail:   "The function evaluated by a watcher panicked or returned an error. The watcher keeps its previous value.",
	},
	"R003": {
		Category: CategoryRuntime,
		Message:  "Callback failed",
		Detail:   "A watcher callback, lifecycle hook or tick callback returned an error.",
	},
	"R004": {
		Category: CategoryObserve,
		Message:  "Cannot set reactive property on non-container value",
		Detail:   "Set and Delete only accept *reactive.Object and *reactive.List targets.",
	},
	"R005": {
		Category: CategoryObserve,
		Message:  "Cannot add reactive property to root state at runtime",
		Detail:   "Root state keys must be declared up front so every component sees the same shape.",
	},
	"R006": {
		Category: CategoryObserve,
		Message:  "Cannot delete property of root state",
		Detail:   "Set the key to nil instead of deleting it.",
	},
	"R007": {
		Category: CategoryRuntime,
		Message:  "Failed watching path",
		Detail:   "Watch only accepts simple dot-delimited paths. Use a function for anything more complex.",
	},
	"R008": {
		Category: CategoryRuntime,
		Message:  "Multiple root nodes returned from render",
		Detail:   "A render function must return a single root node.",
	},
	"R009": {
		Category: CategoryRuntime,
		Message:  "Render failed",
		Detail:   "The render function panicked. The previous tree is kept.",
	},

	// ============================================
	// Patch Errors (P001-P099)
	// ============================================

	"P001": {
		Category: CategoryPatch,
		Message:  "Duplicate keys detected",
		Detail:   "Sibling nodes share a key. This may cause an update error.",
	},
	"P002": {
		Category: CategoryPatch,
		Message:  "Unknown host node",
		Detail:   "The host adapter was handed a node it did not create.",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No configuration file was found at the given path.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config format",
		Detail:   "The configuration file could not be parsed.",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// Wire Errors (W001-W099)
	// ============================================

	"W001": {
		Category: CategoryWire,
		Message:  "Invalid frame",
		Detail:   "A frame received from the client could not be decoded.",
	},
	"W002": {
		Category: CategoryWire,
		Message:  "Frame write failed",
		Detail:   "The connection rejected an outgoing frame.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
