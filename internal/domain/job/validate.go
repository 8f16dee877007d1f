package job

import (
	"errors"
	"strings"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrSkillsRequired      = errors.New("at least one required skill is needed")
	ErrInvalidSalary       = errors.New("invalid salary range")
	ErrInvalidStatus       = errors.New("invalid status")
)

// Validate checks the fields an employer must supply. It returns the
// first problem found.
func (p Posting) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrDescriptionRequired
	}
	if !hasSkill(p.Skills) {
		return ErrSkillsRequired
	}
	if p.SalaryMin != nil && *p.SalaryMin < 0 {
		return ErrInvalidSalary
	}
	if p.SalaryMax != nil && *p.SalaryMax < 0 {
		return ErrInvalidSalary
	}
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
		return ErrInvalidSalary
	}
	if _, ok := ParseStatus(string(p.Status)); !ok {
		return ErrInvalidStatus
	}
	return nil
}

func hasSkill(skills []string) bool {
	for _, s := range skills {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
