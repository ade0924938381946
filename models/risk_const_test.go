package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRiskScore(t *testing.T) {
	t.Run(`score = probability * impact`, func(t *testing.T) {
		require.Equal(t, 1, RiskScore(RiskGradeVeryLow, RiskGradeVeryLow))
		require.Equal(t, 6, RiskScore(RiskGradeLow, RiskGradeMedium))
		require.Equal(t, 15, RiskScore(RiskGradeMedium, RiskGradeVeryHigh))
		require.Equal(t, 20, RiskScore(RiskGradeHigh, RiskGradeVeryHigh))
		require.Equal(t, 25, RiskScore(RiskGradeVeryHigh, RiskGradeVeryHigh))
	})

	t.Run(`unknown grade gives zero score`, func(t *testing.T) {
		require.Equal(t, 0, RiskScore("", RiskGradeVeryHigh))
		require.Equal(t, 0, RiskScore(RiskGradeHigh, "Extreme"))
	})

	t.Run(`band boundaries`, func(t *testing.T) {
		require.Equal(t, RiskBandLow, GetRiskScoreBand(1))
		require.Equal(t, RiskBandLow, GetRiskScoreBand(6))
		require.Equal(t, RiskBandMedium, GetRiskScoreBand(7))
		require.Equal(t, RiskBandMedium, GetRiskScoreBand(15))
		require.Equal(t, RiskBandHigh, GetRiskScoreBand(16))
		require.Equal(t, RiskBandHigh, GetRiskScoreBand(20))
		require.Equal(t, RiskBandCritical, GetRiskScoreBand(21))
		require.Equal(t, RiskBandCritical, GetRiskScoreBand(25))
	})

	t.Run(`grade validation`, func(t *testing.T) {
		for _, grade := range []RiskGrade{RiskGradeVeryLow, RiskGradeLow, RiskGradeMedium, RiskGradeHigh, RiskGradeVeryHigh} {
			require.True(t, grade.IsValid())
		}
		require.False(t, RiskGrade("").IsValid())
		require.False(t, RiskGrade("low").IsValid())
	})
}
