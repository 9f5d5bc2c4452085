package cashflow

import "strings"

// Term is one signed reference of a formula.
type Term struct {
	Ref  string
	Sign float64
}

// ParseFormula splits "a + b - c" into signed terms. The operator before a
// term decides its sign and a leading term is positive. There is no
// precedence, grouping, multiplication or division.
func ParseFormula(formula string) []Term {
	var terms []Term
	sign := 1.0
	start := 0

	flush := func(end int) {
		if ref := strings.TrimSpace(formula[start:end]); ref != "" {
			terms = append(terms, Term{Ref: ref, Sign: sign})
		}
	}

	for i := 0; i < len(formula); i++ {
		switch formula[i] {
		case '+', '-':
			flush(i)
			if formula[i] == '+' {
				sign = 1
			} else {
				sign = -1
			}
			start = i + 1
		}
	}
	flush(len(formula))

	return terms
}

// FormulaRefs lists the references of a formula in order of appearance.
func FormulaRefs(formula string) []string {
	terms := ParseFormula(formula)
	refs := make([]string, 0, len(terms))
	for _, t := range terms {
		refs = append(refs, t.Ref)
	}
	return refs
}

// Evaluate sums the signed series of every term. Unknown references count
// as zero.
func Evaluate(formula string, lookup func(ref string) (Series, bool)) Series {
	var out Series
	for _, t := range ParseFormula(formula) {
		values, ok := lookup(t.Ref)
		if !ok {
			continue
		}
		for i := range out {
			out[i] += t.Sign * values[i]
		}
	}
	return out
}
