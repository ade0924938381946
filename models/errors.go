package models

import "errors"

// Классы ошибок workflow-сервиса, различаются через errors.Is
var (
	// ErrNotFound - запись не найдена
	ErrNotFound = errors.New("запись не найдена")
	// ErrDuplicateNumber - нарушение уникальности номера записи
	ErrDuplicateNumber = errors.New("запись с таким номером уже существует")
	// ErrClosureNotAuthorized - попытка закрыть риск без согласованного запроса на закрытие
	ErrClosureNotAuthorized = errors.New("закрытие риска не согласовано")
	// ErrInvalidState - операция недопустима в текущем состоянии согласования
	ErrInvalidState = errors.New("операция недопустима в текущем состоянии")
)
