package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldKind      = "kind"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
)

// Component names.
const (
	ComponentApp       = "app"
	ComponentWorkspace = "workspace"
	ComponentImport    = "import"
	ComponentExport    = "export"
	ComponentConfig    = "config"
	ComponentTUI       = "tui"
)
