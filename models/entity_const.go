package models

type EntityType string

const (
	EntityTypeIssue      EntityType = "issue"
	EntityTypeRisk       EntityType = "risk"
	EntityTypeChange     EntityType = "change"
	EntityTypeEscalation EntityType = "escalation"
	EntityTypeFault      EntityType = "fault"
)

type EntityStatus string

const (
	// issue
	IssueStatusOpen       EntityStatus = "Open"
	IssueStatusInProgress EntityStatus = "InProgress"
	IssueStatusResolved   EntityStatus = "Resolved"
	IssueStatusClosed     EntityStatus = "Closed"

	// risk
	RiskStatusIdentified      EntityStatus = "Identified"
	RiskStatusAssessed        EntityStatus = "Assessed"
	RiskStatusMitigated       EntityStatus = "Mitigated"
	RiskStatusPendingApproval EntityStatus = "PendingClosureApproval"
	RiskStatusClosed          EntityStatus = "Closed"

	// change
	ChangeStatusRequested   EntityStatus = "Requested"
	ChangeStatusUnderReview EntityStatus = "UnderReview"
	ChangeStatusApproved    EntityStatus = "Approved"
	ChangeStatusImplemented EntityStatus = "Implemented"
	ChangeStatusClosed      EntityStatus = "Closed"
	ChangeStatusRejected    EntityStatus = "Rejected"

	// escalation
	EscalationStatusRaised       EntityStatus = "Raised"
	EscalationStatusAcknowledged EntityStatus = "Acknowledged"
	EscalationStatusInProgress   EntityStatus = "InProgress"
	EscalationStatusResolved     EntityStatus = "Resolved"
	EscalationStatusClosed       EntityStatus = "Closed"

	// fault
	FaultStatusReported      EntityStatus = "Reported"
	FaultStatusInvestigating EntityStatus = "Investigating"
	FaultStatusFixing        EntityStatus = "Fixing"
	FaultStatusVerified      EntityStatus = "Verified"
	FaultStatusClosed        EntityStatus = "Closed"
)

// EntityStatusClosed - терминальный статус, общий для всех типов
const EntityStatusClosed EntityStatus = "Closed"

type EntityPriority string

const (
	PriorityLow      EntityPriority = "Low"
	PriorityMedium   EntityPriority = "Medium"
	PriorityHigh     EntityPriority = "High"
	PriorityCritical EntityPriority = "Critical"
)

func (p EntityPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// EntityDefinition описывает словарь конкретного типа рабочей сущности
type EntityDefinition struct {
	Type          EntityType
	NumberPrefix  string
	DefaultStatus EntityStatus
	Statuses      []EntityStatus
}

func (d EntityDefinition) IsValidStatus(status EntityStatus) bool {
	for _, s := range d.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

var definitionMap = map[EntityType]EntityDefinition{
	EntityTypeIssue: {
		Type:          EntityTypeIssue,
		NumberPrefix:  "ISSUE",
		DefaultStatus: IssueStatusOpen,
		Statuses:      []EntityStatus{IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed},
	},
	EntityTypeRisk: {
		Type:          EntityTypeRisk,
		NumberPrefix:  "RISK",
		DefaultStatus: RiskStatusIdentified,
		Statuses:      []EntityStatus{RiskStatusIdentified, RiskStatusAssessed, RiskStatusMitigated, RiskStatusPendingApproval, RiskStatusClosed},
	},
	EntityTypeChange: {
		Type:          EntityTypeChange,
		NumberPrefix:  "CHG",
		DefaultStatus: ChangeStatusRequested,
		Statuses:      []EntityStatus{ChangeStatusRequested, ChangeStatusUnderReview, ChangeStatusApproved, ChangeStatusImplemented, ChangeStatusClosed, ChangeStatusRejected},
	},
	EntityTypeEscalation: {
		Type:          EntityTypeEscalation,
		NumberPrefix:  "ESC",
		DefaultStatus: EscalationStatusRaised,
		Statuses:      []EntityStatus{EscalationStatusRaised, EscalationStatusAcknowledged, EscalationStatusInProgress, EscalationStatusResolved, EscalationStatusClosed},
	},
	EntityTypeFault: {
		Type:          EntityTypeFault,
		NumberPrefix:  "FLT",
		DefaultStatus: FaultStatusReported,
		Statuses:      []EntityStatus{FaultStatusReported, FaultStatusInvestigating, FaultStatusFixing, FaultStatusVerified, FaultStatusClosed},
	},
}

func GetDefinition(entityType EntityType) (EntityDefinition, bool) {
	def, ok := definitionMap[entityType]
	return def, ok
}

func Definitions() []EntityDefinition {
	result := make([]EntityDefinition, 0, len(definitionMap))
	for _, entityType := range []EntityType{EntityTypeIssue, EntityTypeRisk, EntityTypeChange, EntityTypeEscalation, EntityTypeFault} {
		result = append(result, definitionMap[entityType])
	}
	return result
}
