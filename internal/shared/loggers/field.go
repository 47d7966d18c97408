package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldClient     = "client"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldTag          = "tag"
	FieldSerialNumber = "serial_number"
	FieldLogName      = "log_name"
	FieldBodyBytes    = "body_bytes"
	FieldPartitionId  = "partition_id"
)
