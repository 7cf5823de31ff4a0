package service

import "fmt"

// BusinessError - ошибка бизнес-логики с кодом для HTTP-слоя
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
}

func (b *BusinessError) Error() string {
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

// NewValidationError - отказ до любой мутации, вызывающий должен перезапросить ввод
func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}
