package schema

// ErrorCode 错误代码类型
type ErrorCode string

// 错误代码常量
const (
	ErrInvalidFieldType     ErrorCode = "INVALID_FIELD_TYPE"
	ErrRequiredFieldMissing ErrorCode = "REQUIRED_FIELD_MISSING"
	ErrCoercionFailed       ErrorCode = "COERCION_FAILED"
	ErrSchemaNotFound       ErrorCode = "SCHEMA_NOT_FOUND"
	ErrFieldNotFound        ErrorCode = "FIELD_NOT_FOUND"
)

// ValidationError 行校验错误
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return string(e.Code) + ": " + e.Field + " - " + e.Message
	}
	return string(e.Code) + ": " + e.Message
}

// NewValidationError 创建新的行校验错误
func NewValidationError(code ErrorCode, field, message string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Field:   field,
		Message: message,
	}
}
