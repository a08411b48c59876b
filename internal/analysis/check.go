package analysis

import "fmt"

// Check is one statistical precondition and whether the data appear to
// satisfy it. A failed Check is a warning, not an error.
type Check struct {
	Name      string `json:"name"`
	Satisfied bool   `json:"satisfied"`
	Detail    string `json:"detail"`
}

func assumedIndependent() Check {
	return Check{Name: "independence", Satisfied: true, Detail: "assumed"}
}

// pValueCheck passes when p is at or above alpha, i.e. the test found no
// evidence against the precondition.
func pValueCheck(name, test string, p, alpha float64) Check {
	return Check{
		Name:      name,
		Satisfied: p >= alpha,
		Detail:    fmt.Sprintf("%s p=%.4g, alpha=%g", test, p, alpha),
	}
}

func allSatisfied(checks []Check) bool {
	for _, c := range checks {
		if !c.Satisfied {
			return false
		}
	}
	return true
}

// Failed returns the names of the checks that are not satisfied.
func Failed(checks []Check) []string {
	var out []string
	for _, c := range checks {
		if !c.Satisfied {
			out = append(out, c.Name)
		}
	}
	return out
}
