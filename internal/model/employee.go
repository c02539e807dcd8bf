package model

import (
	"fmt"
	"strings"
	"time"
)

// Employee statuses offered by the roster form.
const (
	StatusActive     = "Active"
	StatusOnLeave    = "On Leave"
	StatusContractor = "Contractor"
	StatusPartTime   = "Part-time"
)

// EmployeeStatuses lists the known roster statuses in display order.
var EmployeeStatuses = []string{StatusActive, StatusOnLeave, StatusContractor, StatusPartTime}

// DefaultDepartment is used when a roster entry has no department.
const DefaultDepartment = "Engineering"

// Employee is one entry in the project roster.
type Employee struct {
	ID            int       `json:"id"`
	Name          string    `json:"employee_name"`
	LaborCategory string    `json:"labor_category"`
	Department    string    `json:"department"`
	Status        string    `json:"status"`
	Salary        float64   `json:"salary"` // annual
	StartDate     time.Time `json:"start_date"`
	Location      string    `json:"location"`
	Manager       string    `json:"manager"`
	Skills        string    `json:"skills"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"date_added"`
}

// NewEmployee builds a roster entry, filling defaults for department and status.
// Name and labor category are required.
func NewEmployee(e Employee) (Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.LaborCategory = strings.TrimSpace(e.LaborCategory)
	if e.Name == "" {
		return Employee{}, fmt.Errorf("employee_name: %w", ErrMissingField)
	}
	if e.LaborCategory == "" {
		return Employee{}, fmt.Errorf("labor_category: %w", ErrMissingField)
	}
	if e.Salary < 0 {
		return Employee{}, fmt.Errorf("salary %.2f: %w", e.Salary, ErrNegativeAmount)
	}
	if e.Department == "" {
		e.Department = DefaultDepartment
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	return e, nil
}

// MonthlyActual is one month of recorded hours and revenue for an enhanced
// team member. Month is formatted "MM/YY".
type MonthlyActual struct {
	Month   string  `json:"month"`
	Hours   float64 `json:"hours"`
	Revenue float64 `json:"revenue"`
}

// StandardHoursPerMonth is the full-time reference for hours utilization.
const StandardHoursPerMonth = 160

// EnhancedEmployee is a team member tracked with LCAT pricing. It lives in its
// own collection and carries no reference to the plain roster.
type EnhancedEmployee struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	LCAT          string          `json:"lcat"`
	Department    string          `json:"department"`
	Location      string          `json:"location"`
	PricedSalary  float64         `json:"priced_salary"`
	CurrentSalary float64         `json:"current_salary"`
	HoursPerMonth float64         `json:"hours_per_month"`
	StartDate     time.Time       `json:"start_date"`
	Manager       string          `json:"manager"`
	Skills        string          `json:"skills"`
	Notes         string          `json:"notes"`
	Monthly       []MonthlyActual `json:"monthly,omitempty"`
	CreatedAt     time.Time       `json:"date_added"`
}

// NewEnhancedEmployee validates an enhanced team member. Name and LCAT are required.
func NewEnhancedEmployee(e EnhancedEmployee) (EnhancedEmployee, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.LCAT = strings.TrimSpace(e.LCAT)
	if e.Name == "" {
		return EnhancedEmployee{}, fmt.Errorf("name: %w", ErrMissingField)
	}
	if e.LCAT == "" {
		return EnhancedEmployee{}, fmt.Errorf("lcat: %w", ErrMissingField)
	}
	if e.PricedSalary < 0 || e.CurrentSalary < 0 || e.HoursPerMonth < 0 {
		return EnhancedEmployee{}, fmt.Errorf("enhanced employee %q: %w", e.Name, ErrNegativeAmount)
	}
	if len(e.Monthly) > 6 {
		e.Monthly = e.Monthly[:6]
	}
	return e, nil
}

// LCATOptions are the labor categories offered for enhanced team members.
var LCATOptions = []string{
	"PM", "SA/Eng Lead", "AI Lead", "HCD Lead", "Scrum Master",
	"Cloud Data Engineer", "SRE", "Full Stack Dev",
}
