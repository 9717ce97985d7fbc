package vacancy

import (
	"fmt"
)

// ParseError ошибка разбора листа доступности
// Лист отклоняется целиком: при любой ошибке ничего не сохраняется
type ParseError struct {
	Line int    // номер строки (с 1), 0 если ошибка относится ко всему листу
	Msg  string // описание проблемы
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("vacancy: %s", e.Msg)
	}
	return fmt.Sprintf("vacancy: line %d: %s", e.Line, e.Msg)
}

func newParseError(line int, format string, v ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, v...)}
}
