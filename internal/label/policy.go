package label

import (
	"fmt"
	"regexp"

	dErrors "labelprint/pkg/domain-errors"
)

// Strategy decides what happens to characters outside a policy's class.
type Strategy string

const (
	// StrategyReject keeps every character and lets validation fail.
	StrategyReject Strategy = "reject"
	// StrategyStrip drops disallowed characters during normalization, so
	// validation only ever checks length.
	StrategyStrip Strategy = "strip"
)

// Policy names accepted by configuration.
const (
	PolicyAlphanumeric = "alphanumeric"
	PolicyNumeric      = "numeric"
)

// Length bounds observed across deployments.
const (
	MinLength             = 6
	AlphanumericMaxLength = 20
	// NumericMaxLength is the default upper digit bound of the numeric
	// policy. Some sites run the stricter NumericMaxLengthStrict.
	NumericMaxLength       = 10
	NumericMaxLengthStrict = 8
)

// Policy is the immutable format contract a code must satisfy.
type Policy struct {
	Name        string
	MinLength   int
	MaxLength   int
	Strategy    Strategy
	Description string

	charClass string
	match     *regexp.Regexp
	strip     *regexp.Regexp
}

// NewPolicy compiles a policy. charClass is the body of a regular expression
// character class, e.g. `0-9` or `A-Za-z0-9 `.
func NewPolicy(name, charClass string, minLen, maxLen int, strategy Strategy, description string) (Policy, error) {
	if minLen < 1 || maxLen < minLen {
		return Policy{}, fmt.Errorf("policy %s: invalid length window %d-%d", name, minLen, maxLen)
	}
	if strategy != StrategyReject && strategy != StrategyStrip {
		return Policy{}, fmt.Errorf("policy %s: unknown strategy %q", name, strategy)
	}

	match, err := regexp.Compile(fmt.Sprintf(`^[%s]{%d,%d}$`, charClass, minLen, maxLen))
	if err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", name, err)
	}
	p := Policy{
		Name:        name,
		MinLength:   minLen,
		MaxLength:   maxLen,
		Strategy:    strategy,
		Description: description,
		charClass:   charClass,
		match:       match,
	}
	if strategy == StrategyStrip {
		p.strip = regexp.MustCompile(`[^` + charClass + `]`)
	}
	return p, nil
}

// AlphanumericPolicy accepts letters, digits, space, dash, comma, dot and
// slash, 6-20 characters, rejecting anything else.
func AlphanumericPolicy() Policy {
	p, err := NewPolicy(PolicyAlphanumeric, `A-Za-z0-9,\- ./`, MinLength, AlphanumericMaxLength,
		StrategyReject, "chars: letters/numbers, space, -, comma, ., /")
	if err != nil {
		panic(err)
	}
	return p
}

// NumericPolicy accepts 6 to maxLen digits. Non-digits are stripped rather
// than rejected, matching keyboard-wedge scanners that prefix or suffix
// their own symbols.
func NumericPolicy(maxLen int) (Policy, error) {
	return NewPolicy(PolicyNumeric, `0-9`, MinLength, maxLen, StrategyStrip, "digits")
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string, numericMaxLen int) (Policy, error) {
	switch name {
	case PolicyAlphanumeric:
		return AlphanumericPolicy(), nil
	case PolicyNumeric:
		return NumericPolicy(numericMaxLen)
	default:
		return Policy{}, fmt.Errorf("unknown label policy %q", name)
	}
}

// Normalize applies Normalize and, for strip policies, removes every
// character outside the class.
func (p Policy) Normalize(raw string) Code {
	code := Normalize(raw)
	if p.strip == nil {
		return code
	}
	return Normalize(p.strip.ReplaceAllString(string(code), ""))
}

// Validate checks the whole code against the policy in one match. The error
// states the full contract rather than the offending character.
func (p Policy) Validate(code Code) error {
	if p.match != nil && p.match.MatchString(string(code)) {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, p.Contract())
}

// Contract describes the accepted format for users.
func (p Policy) Contract() string {
	return fmt.Sprintf("invalid code: use %d-%d %s", p.MinLength, p.MaxLength, p.Description)
}

// Parse normalizes and validates raw input.
func (p Policy) Parse(raw string) (Code, error) {
	code := p.Normalize(raw)
	if err := p.Validate(code); err != nil {
		return code, err
	}
	return code, nil
}
