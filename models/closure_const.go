package models

// ClosureResolution - состояние согласования закрытия риска,
// живет поверх собственного статуса записи
type ClosureResolution string

const (
	ClosureNone     ClosureResolution = ""
	ClosurePending  ClosureResolution = "Pending"
	ClosureApproved ClosureResolution = "Approved"
	ClosureRejected ClosureResolution = "Rejected"
)
