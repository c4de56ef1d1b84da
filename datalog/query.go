package datalog

import (
	"errors"
	"strings"
)

// Source is anything that renders to the engine's canonical query text.
// Query implements it; ValidatedSource implements it for externally
// validated query strings.
type Source interface {
	Render() string
}

// Query is an immutable datalog query: exactly one Find, zero-or-one With,
// zero-or-one In, exactly one Where, plus an optional attached rule alias.
// A Query is safe to share across concurrent callers and to reuse across
// many executions; "modifying" one means building a new value.
type Query struct {
	find  Find
	with  With
	in    In
	where Where
	rules RuleAlias
}

// QueryOption attaches an optional clause during query construction.
type QueryOption func(*Query)

// UsingWith attaches a With clause.
func UsingWith(with With) QueryOption {
	return func(q *Query) {
		q.with = with
	}
}

// UsingIn attaches an In clause.
func UsingIn(in In) QueryOption {
	return func(q *Query) {
		q.in = in
	}
}

// UsingRules attaches a rule alias, satisfying the "%" input source.
func UsingRules(rules RuleAlias) QueryOption {
	return func(q *Query) {
		q.rules = rules
	}
}

// NewQuery creates a Query from already-validated clauses.
//
// It fails with ErrInvalidQueryShape when the Find or Where clause is empty,
// or when a "%" input source and an attached rule alias do not come in a
// pair: the engine requires at least one output variable and one pattern,
// and a rules source without rules (or vice versa) cannot execute.
func NewQuery(find Find, where Where, options ...QueryOption) (Query, error) {
	q := Query{find: find, where: where}

	for _, option := range options {
		option(&q)
	}

	if q.find.Len() == 0 {
		return Query{}, errors.Join(ErrInvalidQueryShape, errors.New("empty :find clause"))
	}

	if q.where.Len() == 0 {
		return Query{}, errors.Join(ErrInvalidQueryShape, errors.New("empty :where clause"))
	}

	if q.in.hasRulesSource() != !q.rules.IsZero() {
		return Query{}, errors.Join(ErrInvalidQueryShape, errors.New("rules source and rule alias must be supplied together"))
	}

	return q, nil
}

// Find returns the Find clause.
func (q Query) Find() Find {
	return q.find
}

// With returns the With clause; a zero-length With means absent.
func (q Query) With() With {
	return q.with
}

// In returns the In clause; a zero-length In means implicit (database only).
func (q Query) In() In {
	return q.in
}

// Where returns the Where clause.
func (q Query) Where() Where {
	return q.where
}

// Rules returns the attached rule alias; IsZero reports absence.
func (q Query) Rules() RuleAlias {
	return q.rules
}

// Equal reports structural equality. Two queries built through different
// paths are equal when their clause sequences are identical.
func (q Query) Equal(other Query) bool {
	return q.find.Equal(other.find) &&
		q.with.Equal(other.with) &&
		q.in.Equal(other.in) &&
		q.where.Equal(other.where) &&
		q.rules.Equal(other.rules)
}

// Render produces the engine's canonical textual form. Rendering is a pure
// function of the AST: clause order is fixed (find, with, in, where), tokens
// are separated by single spaces, and absent optional clauses render as
// nothing. Equal queries render identically, byte for byte.
func (q Query) Render() string {
	b := &strings.Builder{}

	b.WriteString("[ ")
	q.find.renderTo(b)

	if q.with.Len() > 0 {
		b.WriteString(" ")
		q.with.renderTo(b)
	}

	if q.in.Len() > 0 {
		b.WriteString(" ")
		q.in.renderTo(b)
	}

	b.WriteString(" ")
	q.where.renderTo(b)
	b.WriteString(" ]")

	return b.String()
}

// engineArgs weaves caller arguments into the full argument sequence the
// engine expects, following In declaration order: "$" is satisfied by the
// engine itself, each scalar source consumes the next caller argument, and
// "%" is satisfied by the rendered rule alias.
func (q Query) engineArgs(scalarArgs []Value) []Value {
	if q.in.Len() == 0 {
		return scalarArgs
	}

	args := make([]Value, 0, len(scalarArgs)+1)
	next := 0

	for _, src := range q.in.sources {
		switch src.kind {
		case SourceScalar:
			if next < len(scalarArgs) {
				args = append(args, scalarArgs[next])
				next++
			}
		case SourceRules:
			args = append(args, String(q.rules.Render()))
		case SourceDatabase:
			// supplied by the engine, always first
		}
	}

	return args
}

/***** QueryBuilder *****/

// QueryBuilder builds a Query clause by clause in grammar order. It must
// eventually be finalized with Finalize, which validates the shape.
type QueryBuilder interface {
	// Find starts the query with its output specs.
	Find(spec string, specs ...string) FindStageBuilder
}

// FindStageBuilder continues a build after :find.
type FindStageBuilder interface {
	With(variable string, variables ...string) WithStageBuilder
	In(source InSource, sources ...InSource) InStageBuilder
	Where(clause WhereClause, clauses ...WhereClause) CompletedQueryBuilder
}

// WithStageBuilder continues a build after :with.
type WithStageBuilder interface {
	In(source InSource, sources ...InSource) InStageBuilder
	Where(clause WhereClause, clauses ...WhereClause) CompletedQueryBuilder
}

// InStageBuilder continues a build after :in.
type InStageBuilder interface {
	Where(clause WhereClause, clauses ...WhereClause) CompletedQueryBuilder
}

// CompletedQueryBuilder finalizes a build once a :where is present.
type CompletedQueryBuilder interface {
	// UsingRules attaches the rule alias satisfying a "%" input source.
	UsingRules(rules RuleAlias) CompletedQueryBuilder

	// Finalize returns the immutable Query, or ErrInvalidQueryShape.
	Finalize() (Query, error)
}

// queryBuilder implements all the interfaces of QueryBuilder.
type queryBuilder struct {
	query Query
}

// BuildQuery creates a QueryBuilder.
func BuildQuery() QueryBuilder {
	return queryBuilder{}
}

// Find starts the query with its output specs.
func (qb queryBuilder) Find(spec string, specs ...string) FindStageBuilder {
	qb.query.find = NewFind(spec, specs...)

	return qb
}

// With adds the auxiliary variable list.
func (qb queryBuilder) With(variable string, variables ...string) WithStageBuilder {
	qb.query.with = NewWith(variable, variables...)

	return qb
}

// In adds the input source list.
func (qb queryBuilder) In(source InSource, sources ...InSource) InStageBuilder {
	qb.query.in = NewIn(append([]InSource{source}, sources...)...)

	return qb
}

// Where adds the pattern/predicate clauses.
func (qb queryBuilder) Where(clause WhereClause, clauses ...WhereClause) CompletedQueryBuilder {
	qb.query.where = NewWhere(clause, clauses...)

	return qb
}

// UsingRules attaches the rule alias satisfying a "%" input source.
func (qb queryBuilder) UsingRules(rules RuleAlias) CompletedQueryBuilder {
	qb.query.rules = rules

	return qb
}

// Finalize returns the immutable Query, or ErrInvalidQueryShape.
func (qb queryBuilder) Finalize() (Query, error) {
	options := make([]QueryOption, 0, 3)

	if qb.query.with.Len() > 0 {
		options = append(options, UsingWith(qb.query.with))
	}

	if qb.query.in.Len() > 0 {
		options = append(options, UsingIn(qb.query.in))
	}

	if !qb.query.rules.IsZero() {
		options = append(options, UsingRules(qb.query.rules))
	}

	return NewQuery(qb.query.find, qb.query.where, options...)
}
