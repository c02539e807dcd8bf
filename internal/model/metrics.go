package model

// FinancialSummary is the top-level budget position.
type FinancialSummary struct {
	TotalBudget       float64 `json:"total_budget"`
	TotalExpenses     float64 `json:"total_expenses"`
	TotalRevenue      float64 `json:"total_revenue"`
	RemainingBudget   float64 `json:"remaining_budget"`
	BudgetUtilization float64 `json:"budget_utilization"` // percent
}

// CategoryTotal is the summed spend of one expense category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// BudgetLine compares a category allocation with recorded spend.
type BudgetLine struct {
	Category    string
	Allocated   float64
	Spent       float64
	Remaining   float64
	UsedPercent float64
}

// CostSummary is the contract profit and loss position.
type CostSummary struct {
	ContractValue float64 `json:"contract_value"`
	TotalLabor    float64 `json:"total_labor"`
	TotalODC      float64 `json:"total_odc"`
	TotalIndirect float64 `json:"total_indirect"`
	TotalCosts    float64 `json:"total_costs"`
	ProfitLoss    float64 `json:"profit_loss"`
	MarginPercent float64 `json:"margin_percent"`

	// Share of the contract value already consumed by costs, in percent.
	ContractUtilization float64 `json:"contract_utilization"`

	// Budget-vs-actual variance is not tracked; these are always zero.
	LaborVariance    float64 `json:"labor_variance"`
	ODCVariance      float64 `json:"odc_variance"`
	IndirectVariance float64 `json:"indirect_variance"`
}

// ODCStatusTotals sums ODC amounts per lifecycle status.
type ODCStatusTotals struct {
	Planned   float64
	Committed float64
	Invoiced  float64
	Paid      float64
	Other     float64 // items whose status is not one of the four known values
	Count     int
}

// TeamCostSummary summarizes priced vs current cost of the enhanced team.
type TeamCostSummary struct {
	TotalPriced       float64
	TotalCurrent      float64
	TotalHours        float64
	AverageHourlyRate float64
	CostVariance      float64
	CostVariancePct   float64
	Headcount         int
}

// EmployeeCost is the monthly cost picture for one enhanced team member.
type EmployeeCost struct {
	Name             string
	LCAT             string
	BudgetedMonthly  float64
	ActualMonthly    float64
	Variance         float64
	VariancePct      float64
	PricedHourly     float64
	CurrentHourly    float64
	HoursUtilization float64 // percent of the standard month
}

// CostTrendPoint is one period of budgeted vs actual team cost.
type CostTrendPoint struct {
	Period   string
	Budgeted float64
	Actual   float64
}

// TeamAnalytics summarizes the plain roster.
type TeamAnalytics struct {
	Headcount     int
	TotalPayroll  float64
	Departments   int
	Active        int
	AverageSalary float64
	MedianSalary  float64
	MinSalary     float64
	MaxSalary     float64
	ByDepartment  []GroupCount
	ByCategory    []GroupCount
}

// GroupCount is a label with a member count.
type GroupCount struct {
	Label string
	Count int
}

// TrendPoint is one simulated month of spending.
type TrendPoint struct {
	Month    int // 1-based
	Spending float64
}

// Trend is a simulated twelve-month spending series.
type Trend struct {
	Base   float64 // current average monthly spend
	Points []TrendPoint
}

// Risk levels for forecasts.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

// BudgetForecast compares a projected annual spend with the budget.
type BudgetForecast struct {
	ProjectedTotal float64
	Variance       float64
	VariancePct    float64
	Risk           string
}

// ProjectionParams configures a team cost projection. Rates are annual percents.
type ProjectionParams struct {
	Months          int
	SalaryIncrease  float64
	HoursAdjustment float64
	NewHires        float64
	Inflation       float64
	Attrition       float64
}

// ProjectionPoint is one projected month.
type ProjectionPoint struct {
	Month     int     `json:"month"`
	TotalCost float64 `json:"total_cost"`
	TeamSize  float64 `json:"team_size"`
}

// LCATShare is a projected headcount for one labor category.
type LCATShare struct {
	LCAT  string
	Count float64
}

// Projection is the result of compounding team cost forward.
type Projection struct {
	AnnualCost         float64
	TeamSize           float64
	AvgCostPerEmployee float64
	Monthly            []ProjectionPoint
	LCATBreakdown      []LCATShare
}

// TimelineProgress describes how far the project is through its schedule.
type TimelineProgress struct {
	TotalDays       int
	ElapsedDays     int
	RemainingDays   int
	ProgressPercent float64
}

// Efficiency statuses.
const (
	EfficiencyOnTrack        = "On Track"
	EfficiencySlightlyBehind = "Slightly Behind"
	EfficiencyBehind         = "Behind Schedule"
)

// Efficiency relates budget consumption to schedule consumption.
type Efficiency struct {
	Score      float64
	Status     string
	BudgetRisk string
}
