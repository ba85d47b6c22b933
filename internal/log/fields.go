package log

// Common field names for structured logging.
const (
	FieldComponent    = "component"
	FieldError        = "error"
	FieldPath         = "path"
	FieldMethod       = "method"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldSchema       = "schema"
	FieldMonth        = "month"
	FieldCounterparty = "counterparty"
	FieldLabel        = "label"
	FieldRows         = "rows"
	FieldDropped      = "dropped"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentIngest   = "ingest"
	ComponentLabels   = "labels"
	ComponentPipeline = "pipeline"
)
