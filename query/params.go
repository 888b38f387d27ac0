package query

import (
	"maps"
	"slices"
)

// Params is the ordered parameter store behind every query builder.
//
// Values are kept as their wire text. A parameter is either a scalar or a
// sequence; the first write decides its position in the encoded output.
type Params struct {
	names   []string
	values  map[string]*paramValue
	optKeys []string
	options map[string]*optionSet
}

type paramValue struct {
	items []string
	multi bool
}

type optionSet struct {
	names  []string
	values map[string]bool
}

// NewParams returns an empty store.
func NewParams() *Params {
	return &Params{
		values:  make(map[string]*paramValue),
		options: make(map[string]*optionSet),
	}
}

func (p *Params) slot(name string, multi bool) *paramValue {
	v, ok := p.values[name]
	if !ok {
		v = &paramValue{}
		p.values[name] = v
		p.names = append(p.names, name)
	}
	v.multi = multi
	return v
}

// Set overwrites name with a single value.
func (p *Params) Set(name, value string) {
	v := p.slot(name, false)
	v.items = []string{value}
}

// Append adds value to the sequence stored under name, creating it on first use.
func (p *Params) Append(name, value string) {
	v := p.slot(name, true)
	v.items = append(v.items, value)
}

// SetOption records a boolean modifier for an already set parameter.
func (p *Params) SetOption(name, option string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return newValidationError(ErrInvalidOption, "options["+name+"]["+option+"]", value, "option values must be booleans")
	}
	if _, set := p.values[name]; !set {
		return newValidationError(ErrInvalidOption, "options["+name+"]["+option+"]", value, "parameter %q is not set", name)
	}

	opts, exists := p.options[name]
	if !exists {
		opts = &optionSet{values: make(map[string]bool)}
		p.options[name] = opts
		p.optKeys = append(p.optKeys, name)
	}
	if _, seen := opts.values[option]; !seen {
		opts.names = append(opts.names, option)
	}
	opts.values[option] = b
	return nil
}

// Names returns parameter names in insertion order.
func (p *Params) Names() []string {
	return slices.Clone(p.names)
}

// Len returns the number of distinct parameters.
func (p *Params) Len() int {
	return len(p.names)
}

// Has reports whether name has been set.
func (p *Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Get returns the scalar value of name. Sequences report false.
func (p *Params) Get(name string) (string, bool) {
	v, ok := p.values[name]
	if !ok || v.multi || len(v.items) == 0 {
		return "", false
	}
	return v.items[0], true
}

// Values returns the sequence stored under name, or nil for scalars and unset names.
func (p *Params) Values(name string) []string {
	v, ok := p.values[name]
	if !ok || !v.multi {
		return nil
	}
	return slices.Clone(v.items)
}

// IsSequence reports whether name holds a sequence.
func (p *Params) IsSequence(name string) bool {
	v, ok := p.values[name]
	return ok && v.multi
}

// Option returns the value of an option and whether it was recorded.
func (p *Params) Option(name, option string) (value, ok bool) {
	opts, exists := p.options[name]
	if !exists {
		return false, false
	}
	value, ok = opts.values[option]
	return value, ok
}

// Options returns a copy of the options recorded for name.
func (p *Params) Options(name string) map[string]bool {
	opts, exists := p.options[name]
	if !exists {
		return nil
	}
	return maps.Clone(opts.values)
}

// HasOptions reports whether any option has been recorded.
func (p *Params) HasOptions() bool {
	return len(p.optKeys) > 0
}
