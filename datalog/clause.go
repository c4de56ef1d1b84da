package datalog

import (
	"slices"
	"strings"
)

/***** Find *****/

// Find is the ordered set of output bindings of a query. Order is
// significant: result rows are decoded positionally in Find order.
type Find struct {
	specs []string
}

// NewFind creates a Find clause from output specs, which are variables
// ("?name") or aggregation forms ("(count ?e)"). Empty specs are dropped;
// order and duplicates are preserved since they are positionally meaningful.
func NewFind(spec string, specs ...string) Find {
	return Find{specs: sanitizeSpecs(spec, specs...)}
}

// Specs returns the output specs in declaration order.
func (f Find) Specs() []string {
	return f.specs
}

// Len returns the number of output columns, i.e. the query's output arity.
func (f Find) Len() int {
	return len(f.specs)
}

// Equal reports structural equality.
func (f Find) Equal(other Find) bool {
	return slices.Equal(f.specs, other.specs)
}

func (f Find) renderTo(b *strings.Builder) {
	b.WriteString(":find")
	for _, s := range f.specs {
		b.WriteString(" ")
		b.WriteString(s)
	}
}

/***** With *****/

// With is the optional auxiliary variable list that affects aggregation
// grouping. Order is significant.
type With struct {
	vars []string
}

// NewWith creates a With clause. Empty variables are dropped.
func NewWith(variable string, variables ...string) With {
	return With{vars: sanitizeSpecs(variable, variables...)}
}

// Vars returns the auxiliary variables in declaration order.
func (w With) Vars() []string {
	return w.vars
}

// Len returns the number of auxiliary variables.
func (w With) Len() int {
	return len(w.vars)
}

// Equal reports structural equality.
func (w With) Equal(other With) bool {
	return slices.Equal(w.vars, other.vars)
}

func (w With) renderTo(b *strings.Builder) {
	b.WriteString(":with")
	for _, v := range w.vars {
		b.WriteString(" ")
		b.WriteString(v)
	}
}

/***** In *****/

// SourceKind enumerates the kinds of input sources an :in clause declares.
type SourceKind uint8

const (
	// SourceDatabase is the database snapshot source, rendered as "$".
	// The engine supplies it; it never consumes a caller argument.
	SourceDatabase SourceKind = iota + 1

	// SourceScalar is a bound input variable, rendered as the variable name.
	// Each scalar source consumes exactly one caller argument, in order.
	SourceScalar

	// SourceRules is the rule alias source, rendered as "%". It is satisfied
	// by the rule alias attached to the query, not by a caller argument.
	SourceRules
)

// InSource is one input source of an :in clause.
type InSource struct {
	kind SourceKind
	name string
}

// DB creates the database snapshot source ("$").
func DB() InSource {
	return InSource{kind: SourceDatabase, name: "$"}
}

// Scalar creates a bound input variable source, e.g. Scalar("?name").
func Scalar(variable string) InSource {
	return InSource{kind: SourceScalar, name: variable}
}

// Rules creates the rule alias source ("%").
func Rules() InSource {
	return InSource{kind: SourceRules, name: "%"}
}

// Kind returns the source kind.
func (s InSource) Kind() SourceKind {
	return s.kind
}

// Name returns the rendered token of the source.
func (s InSource) Name() string {
	return s.name
}

// In is the ordered list of input sources of a query. It may be empty, in
// which case the database snapshot is the single implicit source.
type In struct {
	sources []InSource
}

// NewIn creates an In clause from the given sources, in order.
func NewIn(sources ...InSource) In {
	copied := make([]InSource, len(sources))
	copy(copied, sources)

	return In{sources: copied}
}

// Sources returns the input sources in declaration order.
func (in In) Sources() []InSource {
	return in.sources
}

// Len returns the number of declared sources.
func (in In) Len() int {
	return len(in.sources)
}

// ScalarArity returns the number of scalar sources, i.e. the number of
// caller arguments a matching execution call must supply.
func (in In) ScalarArity() int {
	count := 0
	for _, s := range in.sources {
		if s.kind == SourceScalar {
			count++
		}
	}

	return count
}

func (in In) hasRulesSource() bool {
	for _, s := range in.sources {
		if s.kind == SourceRules {
			return true
		}
	}

	return false
}

// Equal reports structural equality.
func (in In) Equal(other In) bool {
	return slices.Equal(in.sources, other.sources)
}

func (in In) renderTo(b *strings.Builder) {
	b.WriteString(":in")
	for _, s := range in.sources {
		b.WriteString(" ")
		b.WriteString(s.name)
	}
}

/***** Where *****/

// WhereClause is one pattern or predicate clause of a :where.
type WhereClause interface {
	renderTo(b *strings.Builder)
	equalClause(other WhereClause) bool
}

// Pattern is a data pattern clause, e.g. [ ?e :person/name ?name ].
// Each position is a variable, a keyword, a literal, or the blank "_".
type Pattern struct {
	entity    string
	attribute string
	value     string
}

// P creates a Pattern clause from its three positions.
func P(entity, attribute, value string) Pattern {
	return Pattern{entity: entity, attribute: attribute, value: value}
}

// Entity returns the entity position.
func (p Pattern) Entity() string {
	return p.entity
}

// Attribute returns the attribute position.
func (p Pattern) Attribute() string {
	return p.attribute
}

// Value returns the value position.
func (p Pattern) Value() string {
	return p.value
}

func (p Pattern) renderTo(b *strings.Builder) {
	b.WriteString("[ ")
	b.WriteString(p.entity)
	b.WriteString(" ")
	b.WriteString(p.attribute)
	b.WriteString(" ")
	b.WriteString(p.value)
	b.WriteString(" ]")
}

func (p Pattern) equalClause(other WhereClause) bool {
	o, ok := other.(Pattern)

	return ok && p == o
}

// Predicate is a predicate expression clause, e.g. [ (> ?age 21) ].
// The expression is stored without the surrounding parentheses.
type Predicate struct {
	expr string
}

// Pred creates a Predicate clause, e.g. Pred("> ?age 21").
func Pred(expr string) Predicate {
	return Predicate{expr: strings.TrimSpace(expr)}
}

// Expr returns the predicate expression without parentheses.
func (p Predicate) Expr() string {
	return p.expr
}

func (p Predicate) renderTo(b *strings.Builder) {
	b.WriteString("[ (")
	b.WriteString(p.expr)
	b.WriteString(") ]")
}

func (p Predicate) equalClause(other WhereClause) bool {
	o, ok := other.(Predicate)

	return ok && p == o
}

// RuleCall invokes a named rule from the query's rule alias,
// e.g. (community ?e ?c).
type RuleCall struct {
	name string
	args []string
}

// Rule creates a RuleCall clause.
func Rule(name string, args ...string) RuleCall {
	copied := make([]string, len(args))
	copy(copied, args)

	return RuleCall{name: name, args: copied}
}

// Name returns the invoked rule name.
func (r RuleCall) Name() string {
	return r.name
}

// Args returns the invocation arguments in order.
func (r RuleCall) Args() []string {
	return r.args
}

func (r RuleCall) renderTo(b *strings.Builder) {
	b.WriteString("(")
	b.WriteString(r.name)
	for _, a := range r.args {
		b.WriteString(" ")
		b.WriteString(a)
	}
	b.WriteString(")")
}

func (r RuleCall) equalClause(other WhereClause) bool {
	o, ok := other.(RuleCall)

	return ok && r.name == o.name && slices.Equal(r.args, o.args)
}

// Where is the ordered set of pattern/predicate clauses of a query.
type Where struct {
	clauses []WhereClause
}

// NewWhere creates a Where clause from the given clauses, in order.
func NewWhere(clause WhereClause, clauses ...WhereClause) Where {
	all := append([]WhereClause{clause}, clauses...)
	all = slices.DeleteFunc(all, func(c WhereClause) bool { return c == nil })

	return Where{clauses: slices.Clip(all)}
}

// Clauses returns the clauses in declaration order.
func (w Where) Clauses() []WhereClause {
	return w.clauses
}

// Len returns the number of clauses.
func (w Where) Len() int {
	return len(w.clauses)
}

// Equal reports structural equality.
func (w Where) Equal(other Where) bool {
	if len(w.clauses) != len(other.clauses) {
		return false
	}

	for i := range w.clauses {
		if !w.clauses[i].equalClause(other.clauses[i]) {
			return false
		}
	}

	return true
}

func (w Where) renderTo(b *strings.Builder) {
	b.WriteString(":where")
	for _, c := range w.clauses {
		b.WriteString(" ")
		c.renderTo(b)
	}
}

/***** RuleAlias *****/

// RuleAlias is a named, opaque collection of rule definitions referenced from
// a query through the "%" input source. The definitions are pre-validated
// rule clause strings; this package renders them inline without inspection.
type RuleAlias struct {
	name string
	defs []string
}

// NewRuleAlias creates a RuleAlias from pre-validated rule definition
// strings. Empty definitions are dropped; an alias without a single
// definition fails with ErrInvalidQueryShape.
func NewRuleAlias(name string, def string, defs ...string) (RuleAlias, error) {
	all := sanitizeSpecs(def, defs...)
	if name == "" || len(all) == 0 {
		return RuleAlias{}, ErrInvalidQueryShape
	}

	return RuleAlias{name: name, defs: all}, nil
}

// Name returns the alias name.
func (ra RuleAlias) Name() string {
	return ra.name
}

// Defs returns the rule definitions in declaration order.
func (ra RuleAlias) Defs() []string {
	return ra.defs
}

// IsZero reports whether no alias is attached.
func (ra RuleAlias) IsZero() bool {
	return ra.name == "" && len(ra.defs) == 0
}

// Equal reports structural equality.
func (ra RuleAlias) Equal(other RuleAlias) bool {
	return ra.name == other.name && slices.Equal(ra.defs, other.defs)
}

// Render produces the inline textual form passed to the engine for the "%"
// input source.
func (ra RuleAlias) Render() string {
	b := &strings.Builder{}
	b.WriteString("[ ")
	for i, d := range ra.defs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(d)
	}
	b.WriteString(" ]")

	return b.String()
}

// sanitizeSpecs drops empty strings, preserving order and duplicates.
func sanitizeSpecs(spec string, specs ...string) []string {
	all := append([]string{spec}, specs...)
	all = slices.DeleteFunc(all, func(s string) bool { return s == "" })

	return slices.Clip(all)
}
