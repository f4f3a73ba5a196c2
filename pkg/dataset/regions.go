package dataset

import "github.com/riskboard/riskboard/pkg/types"

// Regions returns the per-region dropout records, sorted by descending
// dropout rate.
func Regions() []types.RegionRecord {
	return []types.RegionRecord{
		{Region: "Lagos", DropoutRate: 66.2, Beneficiaries: 1429, RiskLevel: types.RiskHigh},
		{Region: "Enugu", DropoutRate: 65.3, Beneficiaries: 1215, RiskLevel: types.RiskHigh},
		{Region: "Kaduna", DropoutRate: 64.8, Beneficiaries: 1108, RiskLevel: types.RiskHigh},
		{Region: "Kano", DropoutRate: 64.1, Beneficiaries: 1087, RiskLevel: types.RiskMediumHigh},
		{Region: "Abuja", DropoutRate: 63.7, Beneficiaries: 1156, RiskLevel: types.RiskMedium},
		{Region: "Jos", DropoutRate: 62.7, Beneficiaries: 987, RiskLevel: types.RiskMedium},
		{Region: "Ibadan", DropoutRate: 62.5, Beneficiaries: 1203, RiskLevel: types.RiskMedium},
		{Region: "Port Harcourt", DropoutRate: 61.2, Beneficiaries: 1644, RiskLevel: types.RiskLowest},
	}
}
