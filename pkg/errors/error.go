package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// ScenarioReadError represents an error when reading a scenario file from disk.
	ScenarioReadError ErrorCode = "scenario_read_error"
	// ScenarioParseError represents an error when decoding a scenario document.
	ScenarioParseError ErrorCode = "scenario_parse_error"
	// ScenarioValidationError represents an error when a scenario fails validation.
	ScenarioValidationError ErrorCode = "scenario_validation_error"
	// ScenarioWatchError represents an error when watching a scenario file for changes.
	ScenarioWatchError ErrorCode = "scenario_watch_error"

	// BookBuildError represents an error when building quote collections from raw input.
	BookBuildError ErrorCode = "book_build_error"

	// ReportEncodeError represents an error when encoding a run report.
	ReportEncodeError ErrorCode = "report_encode_error"
	// ReportWriteError represents an error when writing a run report to its sink.
	ReportWriteError ErrorCode = "report_write_error"
)
