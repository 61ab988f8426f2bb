// internal/commission/errors.go
package commission

import (
	"fmt"
	"strings"
)

// ValidationError reports input rejected before any computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("commission: invalid %s: %s", e.Field, e.Reason)
}

// AmbiguousRuleError is returned when more than one rule is simultaneously
// applicable for the same salesperson and commission type. This is a
// configuration mistake the caller must surface for manual resolution;
// the selector never guesses.
type AmbiguousRuleError struct {
	SalespersonID  uint
	CommissionType string
	RuleIDs        []uint
}

func (e *AmbiguousRuleError) Error() string {
	ids := make([]string, len(e.RuleIDs))
	for i, id := range e.RuleIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("commission: %d rules simultaneously active for salesperson %d type %s (ids %s)",
		len(e.RuleIDs), e.SalespersonID, e.CommissionType, strings.Join(ids, ", "))
}
