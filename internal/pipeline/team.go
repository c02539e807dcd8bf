package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

// TeamCostSummary compares priced and current salary across the enhanced team.
func TeamCostSummary(team []model.EnhancedEmployee) model.TeamCostSummary {
	var s model.TeamCostSummary
	for _, e := range team {
		s.Headcount++
		s.TotalPriced += e.PricedSalary
		s.TotalCurrent += e.CurrentSalary
		s.TotalHours += e.HoursPerMonth
	}
	if s.TotalHours > 0 {
		s.AverageHourlyRate = s.TotalCurrent / 12 / s.TotalHours
	}
	s.CostVariance = s.TotalCurrent - s.TotalPriced
	if s.TotalPriced > 0 {
		s.CostVariancePct = s.CostVariance / s.TotalPriced * 100
	}
	return s
}

// EmployeeCosts returns the monthly cost picture for each team member.
func EmployeeCosts(team []model.EnhancedEmployee) []model.EmployeeCost {
	out := make([]model.EmployeeCost, 0, len(team))
	for _, e := range team {
		c := model.EmployeeCost{
			Name:            e.Name,
			LCAT:            e.LCAT,
			BudgetedMonthly: e.PricedSalary / 12,
			ActualMonthly:   e.CurrentSalary / 12,
		}
		c.Variance = c.ActualMonthly - c.BudgetedMonthly
		if c.BudgetedMonthly > 0 {
			c.VariancePct = c.Variance / c.BudgetedMonthly * 100
		}
		if e.HoursPerMonth > 0 {
			c.PricedHourly = c.BudgetedMonthly / e.HoursPerMonth
			c.CurrentHourly = c.ActualMonthly / e.HoursPerMonth
		}
		c.HoursUtilization = e.HoursPerMonth / model.StandardHoursPerMonth * 100
		out = append(out, c)
	}
	return out
}

// CostTrend builds six monthly periods of budgeted and actual team cost
// ending at now, oldest first. The series is illustrative: the budgeted and
// actual bases are scaled by 2% and 2.5% per step away from the current month.
func CostTrend(team []model.EnhancedEmployee, now time.Time) []model.CostTrendPoint {
	if len(team) == 0 {
		return nil
	}
	s := TeamCostSummary(team)
	baseBudgeted := s.TotalPriced / 12
	baseActual := s.TotalCurrent / 12

	const periods = 6
	out := make([]model.CostTrendPoint, periods)
	for i := 0; i < periods; i++ {
		out[periods-1-i] = model.CostTrendPoint{
			Period:   now.AddDate(0, 0, -30*i).Format("2006-01"),
			Budgeted: baseBudgeted * (1 + float64(i)*0.02),
			Actual:   baseActual * (1 + float64(i)*0.025),
		}
	}
	return out
}

// TeamAnalytics summarizes headcount and salary distribution of the roster.
func TeamAnalytics(employees []model.Employee) model.TeamAnalytics {
	a := model.TeamAnalytics{Headcount: len(employees)}
	if len(employees) == 0 {
		return a
	}

	salaries := make([]float64, 0, len(employees))
	deptMap := make(map[string]int)
	catMap := make(map[string]int)
	for _, e := range employees {
		a.TotalPayroll += e.Salary
		salaries = append(salaries, e.Salary)
		deptMap[e.Department]++
		catMap[e.LaborCategory]++
		if e.Status == model.StatusActive {
			a.Active++
		}
	}

	sort.Float64s(salaries)
	a.MinSalary = salaries[0]
	a.MaxSalary = salaries[len(salaries)-1]
	a.AverageSalary = a.TotalPayroll / float64(len(salaries))
	mid := len(salaries) / 2
	if len(salaries)%2 == 0 {
		a.MedianSalary = (salaries[mid-1] + salaries[mid]) / 2
	} else {
		a.MedianSalary = salaries[mid]
	}

	a.Departments = len(deptMap)
	a.ByDepartment = sortedCounts(deptMap)
	a.ByCategory = sortedCounts(catMap)
	return a
}

// sortedCounts orders groups by count descending, then label.
func sortedCounts(m map[string]int) []model.GroupCount {
	out := make([]model.GroupCount, 0, len(m))
	for k, v := range m {
		out = append(out, model.GroupCount{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// EmployeeFilter selects roster entries. Search matches name, department or
// skills case-insensitively; Department and Status match exactly.
type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
}

// FilterEmployees returns the entries matching f, preserving order.
func FilterEmployees(employees []model.Employee, f EmployeeFilter) []model.Employee {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []model.Employee
	for _, e := range employees {
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Department), search) &&
			!strings.Contains(strings.ToLower(e.Skills), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}
