package models

type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "Pending"
	ActionStatusInProgress ActionStatus = "InProgress"
	ActionStatusCompleted  ActionStatus = "Completed"
	ActionStatusCancelled  ActionStatus = "Cancelled"
	ActionStatusOnHold     ActionStatus = "OnHold"
)

func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted, ActionStatusCancelled, ActionStatusOnHold:
		return true
	}
	return false
}
