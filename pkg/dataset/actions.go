package dataset

import "github.com/riskboard/riskboard/pkg/types"

// ActionSteps returns the emergency seven-day plan.
func ActionSteps() []types.ActionStep {
	return []types.ActionStep{
		{
			Window:  "Day 1-2",
			Title:   "Identify Critical Cases",
			Summary: "Extract all beneficiaries with 90+ days since last claim",
			Details: []string{
				"Expected count: ~2,500 beneficiaries",
				"Priority regions: Lagos, Enugu, Kaduna",
				"Create contact list with phone numbers",
			},
		},
		{
			Window:  "Day 3-4",
			Title:   "SMS Campaign",
			Summary: "\"We miss you! Your health matters. Reply YES for a free health check.\"",
			Details: []string{
				"All 90+ day inactive beneficiaries",
				"Send between 9 AM - 5 PM",
				"Track response rates by region",
			},
		},
		{
			Window:  "Day 5-7",
			Title:   "Field Agent Calls",
			Summary: "Call non-responders to the SMS campaign",
			Details: []string{
				"\"Hi [Name], this is [Agent] from [Company]\"",
				"\"We noticed you haven't used your insurance recently\"",
				"\"Is everything okay with your health?\"",
				"\"Would you like to schedule a free health check?\"",
			},
		},
	}
}

// Timeline returns the 30-day implementation plan.
func Timeline() []types.TimelineWeek {
	return []types.TimelineWeek{
		{Week: "Week 1", Focus: "Emergency Outreach", KeyActivities: "Contact 2,500 critical cases", SuccessMetric: "20% response rate to outreach"},
		{Week: "Week 2", Focus: "System Setup", KeyActivities: "Deploy automated SMS system", SuccessMetric: "SMS system processing 1000/day"},
		{Week: "Week 3", Focus: "Process Optimization", KeyActivities: "Train field agents on SHAP insights", SuccessMetric: "Agents trained on top 5 factors"},
		{Week: "Week 4", Focus: "Results Analysis", KeyActivities: "Measure intervention success rate", SuccessMetric: "15% reduction in critical cases"},
	}
}

// Emergency returns the 30-day emergency budget request.
func Emergency() types.EmergencyPlan {
	return types.EmergencyPlan{
		Budget: []types.BudgetLine{
			{Item: "SMS campaigns", Amount: 200_000},
			{Item: "Field agent overtime", Amount: 500_000},
			{Item: "Mobile health screenings", Amount: 300_000},
		},
		DropoutsPrevented: 200,
		WindowDays:        30,
	}
}
