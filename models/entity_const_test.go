package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityDefinitions(t *testing.T) {
	t.Run(`каждый тип имеет словарь`, func(t *testing.T) {
		defs := Definitions()
		require.Len(t, defs, 5)
		for _, def := range defs {
			require.NotEmpty(t, def.NumberPrefix)
			require.NotEmpty(t, def.DefaultStatus)
			require.True(t, def.IsValidStatus(def.DefaultStatus))
			require.True(t, def.IsValidStatus(EntityStatusClosed))
		}
	})

	t.Run(`статусы по умолчанию`, func(t *testing.T) {
		cases := map[EntityType]EntityStatus{
			EntityTypeIssue:      IssueStatusOpen,
			EntityTypeRisk:       RiskStatusIdentified,
			EntityTypeChange:     ChangeStatusRequested,
			EntityTypeEscalation: EscalationStatusRaised,
			EntityTypeFault:      FaultStatusReported,
		}
		for entityType, status := range cases {
			def, ok := GetDefinition(entityType)
			require.True(t, ok)
			require.Equal(t, status, def.DefaultStatus)
		}
	})

	t.Run(`чужой статус не проходит валидацию`, func(t *testing.T) {
		def, ok := GetDefinition(EntityTypeIssue)
		require.True(t, ok)
		require.False(t, def.IsValidStatus(RiskStatusIdentified))
		require.False(t, def.IsValidStatus("Done"))

		_, ok = GetDefinition("unknown")
		require.False(t, ok)
	})

	t.Run(`статус PendingClosureApproval только у риска`, func(t *testing.T) {
		for _, def := range Definitions() {
			if def.Type == EntityTypeRisk {
				require.True(t, def.IsValidStatus(RiskStatusPendingApproval))
				continue
			}
			require.False(t, def.IsValidStatus(RiskStatusPendingApproval))
		}
	})
}
