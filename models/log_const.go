package models

type LogType string

const (
	LogTypeCreated          LogType = "Created"           // Запись создана
	LogTypeStatusChange     LogType = "Status Change"     // Изменен статус
	LogTypeUpdated          LogType = "Updated"           // Изменены поля записи
	LogTypeComment          LogType = "Comment"           // Комментарий
	LogTypeClosureRequested LogType = "Closure Requested" // Запрошено закрытие риска
	LogTypeClosureApproved  LogType = "Closure Approved"  // Закрытие риска согласовано
	LogTypeClosureRejected  LogType = "Closure Rejected"  // Закрытие риска отклонено
)
