// internal/commission/repository.go
package commission

import (
	"time"

	"gorm.io/gorm"
)

// Repository wraps database access for rules and assignments.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// CreateRule inserts an organization default rule.
func (r *Repository) CreateRule(rule *CommissionRule) error {
	return r.DB.Create(rule).Error
}

// FindRules returns every organization default rule.
func (r *Repository) FindRules() ([]CommissionRule, error) {
	var list []CommissionRule
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// FindRuleByID returns one rule by ID.
func (r *Repository) FindRuleByID(id uint) (*CommissionRule, error) {
	var rule CommissionRule
	if err := r.DB.First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule saves changes to an existing rule.
func (r *Repository) UpdateRule(rule *CommissionRule) error {
	return r.DB.Save(rule).Error
}

// DeleteRule soft-deletes a rule.
func (r *Repository) DeleteRule(rule *CommissionRule) error {
	return r.DB.Delete(rule).Error
}

// CreateAssignment inserts a per-salesperson assignment.
func (r *Repository) CreateAssignment(a *SalespersonAssignment) error {
	return r.DB.Create(a).Error
}

// FindAssignments returns every assignment, optionally filtered by
// salesperson when salespersonID is nonzero.
func (r *Repository) FindAssignments(salespersonID uint) ([]SalespersonAssignment, error) {
	var list []SalespersonAssignment
	q := r.DB.Order("id")
	if salespersonID != 0 {
		q = q.Where("salesperson_id = ?", salespersonID)
	}
	err := q.Find(&list).Error
	return list, err
}

// FindAssignmentByID returns one assignment by ID.
func (r *Repository) FindAssignmentByID(id uint) (*SalespersonAssignment, error) {
	var a SalespersonAssignment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssignment saves changes to an existing assignment.
func (r *Repository) UpdateAssignment(a *SalespersonAssignment) error {
	return r.DB.Save(a).Error
}

// DeleteAssignment soft-deletes an assignment.
func (r *Repository) DeleteAssignment(a *SalespersonAssignment) error {
	return r.DB.Delete(a).Error
}

// Select loads the candidate rule sets for one salesperson and runs the
// selector over them at asOf.
func (r *Repository) Select(salespersonID uint, commissionType string, asOf time.Time) (*Resolved, error) {
	assignments, err := r.FindAssignments(salespersonID)
	if err != nil {
		return nil, err
	}
	defaults, err := r.FindRules()
	if err != nil {
		return nil, err
	}
	return SelectRule(assignments, defaults, salespersonID, commissionType, asOf)
}
