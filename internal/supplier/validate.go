package supplier

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
			return Region(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("risklevel", func(fl validator.FieldLevel) bool {
			return RiskLevel(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("verification", func(fl validator.FieldLevel) bool {
			return Verification(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// ValidationError lists every field that failed validation on one record.
type ValidationError struct {
	Record string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Record, strings.Join(e.Fields, "; "))
}

func check(record string, v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %s: %w", record, err)
	}
	out := &ValidationError{Record: record}
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			out.Fields = append(out.Fields, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		out.Fields = append(out.Fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return out
}

// Validate checks the supplier's range invariants: score in [0,10],
// percentages in [0,100] and a non-negative per-unit footprint.
func (s Supplier) Validate() error {
	return check("supplier "+s.ID, s)
}

// Validate checks lifecycle and target ranges.
func (p Product) Validate() error {
	return check("product "+p.ID, p)
}

// Validate checks a procurement request. Priorities must be non-negative;
// unlike a form validator it does not require them to sum to 100.
func (r Requirements) Validate() error {
	return check("requirements", r)
}
