package models

type RiskGrade string

const (
	RiskGradeVeryLow  RiskGrade = "Very Low"
	RiskGradeLow      RiskGrade = "Low"
	RiskGradeMedium   RiskGrade = "Medium"
	RiskGradeHigh     RiskGrade = "High"
	RiskGradeVeryHigh RiskGrade = "Very High"
)

// Ordinal возвращает порядковый вес градации (1..5), 0 - неизвестная градация
func (g RiskGrade) Ordinal() int {
	switch g {
	case RiskGradeVeryLow:
		return 1
	case RiskGradeLow:
		return 2
	case RiskGradeMedium:
		return 3
	case RiskGradeHigh:
		return 4
	case RiskGradeVeryHigh:
		return 5
	}
	return 0
}

func (g RiskGrade) IsValid() bool {
	return g.Ordinal() != 0
}

// RiskScore = вероятность * влияние, диапазон 1-25
func RiskScore(probability, impact RiskGrade) int {
	return probability.Ordinal() * impact.Ordinal()
}

type RiskScoreBand string

const (
	RiskBandLow      RiskScoreBand = "low"
	RiskBandMedium   RiskScoreBand = "medium"
	RiskBandHigh     RiskScoreBand = "high"
	RiskBandCritical RiskScoreBand = "critical"
)

func GetRiskScoreBand(score int) RiskScoreBand {
	switch {
	case score <= 6:
		return RiskBandLow
	case score <= 15:
		return RiskBandMedium
	case score <= 20:
		return RiskBandHigh
	}
	return RiskBandCritical
}
