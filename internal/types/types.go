// Package types defines core data types and enums shared across the
// funnypdf application.
package types

// Config holds the application configuration persisted to disk.
type Config struct {
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"` // base URL of an OpenAI-compatible API
	OpenAIModel   string `json:"openai_model"`
	CatImageURL   string `json:"cat_image_url"` // endpoint returning a random cat bitmap
	FontPath      string `json:"font_path"`     // optional UTF-8 TTF for rendering
	WorkDirectory string `json:"work_directory"`
	ResultsDir    string `json:"results_dir"` // base directory for per-job output
	DefaultStyle  string `json:"default_style"`
}

// ProcessPhase describes where a job is in the pipeline.
type ProcessPhase string

const (
	PhaseIdle       ProcessPhase = "idle"
	PhaseExtracting ProcessPhase = "extracting"
	PhaseFunnifying ProcessPhase = "funnifying"
	PhaseRewriting  ProcessPhase = "rewriting"
	PhaseRendering  ProcessPhase = "rendering"
	PhaseComplete   ProcessPhase = "complete"
	PhaseError      ProcessPhase = "error"
)

// Status reports job progress.
type Status struct {
	Phase    ProcessPhase `json:"phase"`
	Progress int          `json:"progress"` // 0-100
	Message  string       `json:"message"`
	Error    string       `json:"error,omitempty"`
}

// IsValidPhase checks if the given phase is a known ProcessPhase.
func IsValidPhase(phase ProcessPhase) bool {
	switch phase {
	case PhaseIdle, PhaseExtracting, PhaseFunnifying, PhaseRewriting,
		PhaseRendering, PhaseComplete, PhaseError:
		return true
	default:
		return false
	}
}

// ErrorCode classifies application errors.
type ErrorCode string

const (
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrEmptyContent ErrorCode = "EMPTY_CONTENT"
	ErrAPICall      ErrorCode = "API_CALL_ERROR"
	ErrRender       ErrorCode = "RENDER_ERROR"
	ErrConfig       ErrorCode = "CONFIG_ERROR"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error type carrying a code and optional cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}
