package models

// DepartmentMetrics is the aggregate wellness picture for one department.
// Entries are keyed by employee AnonymousID, never by user id.
type DepartmentMetrics struct {
	Department   string  `json:"department"`
	Headcount    int     `json:"headcount"`
	AverageMood  float64 `json:"averageMood"`
	Participants int     `json:"participants"`
}

// WellnessMetrics is the organization-wide analytics view. It is computed
// from employee mood data through anonymized identifiers only.
type WellnessMetrics struct {
	OrganizationID string              `json:"organizationId"`
	EmployeeCount  int                 `json:"employeeCount"`
	AverageMood    float64             `json:"averageMood"`
	Participation  float64             `json:"participation"`
	AverageStreak  float64             `json:"averageStreak"`
	Departments    []DepartmentMetrics `json:"departments"`
}
