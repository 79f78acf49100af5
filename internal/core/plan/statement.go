// Package plan contains the pure change-detection and remediation planning
// logic. Planning produces an ordered list of statement objects; emitting or
// executing them is the shell's job, which keeps this package testable
// without a live database.
package plan

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Statement is one entry of a remediation plan: an optional comment
// documenting the decision, and optionally a SQL statement. DML statements
// carry $n placeholders plus Args so executors can run them parameterized;
// printing inlines the arguments as SQL literals.
type Statement struct {
	Comment string
	SQL     string
	Args    []any
}

// InlineSQL returns the statement's SQL with arguments rendered as literals,
// suitable for piping into psql.
func (s Statement) InlineSQL() string {
	sql := s.SQL
	// Substitute highest placeholders first so $1 never matches inside $10.
	for i := len(s.Args); i >= 1; i-- {
		sql = strings.ReplaceAll(sql, "$"+strconv.Itoa(i), renderLiteral(s.Args[i-1]))
	}
	return sql
}

// Plan is an ordered sequence of statements. Remediation statements always
// precede the baseline writes that record them, so an aborted execution never
// leaves a baseline claiming indexes were rebuilt when they were not.
type Plan struct {
	Statements []Statement
}

// Empty reports whether the plan contains neither statements nor notices.
func (p Plan) Empty() bool {
	return len(p.Statements) == 0
}

// SQLStatements returns only the entries carrying executable SQL.
func (p Plan) SQLStatements() []Statement {
	var out []Statement
	for _, s := range p.Statements {
		if s.SQL != "" {
			out = append(out, s)
		}
	}
	return out
}

// Render writes the plan as a psql-ready script: a stop-on-first-error
// pragma, then comment lines interleaved with literal SQL.
func (p Plan) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\\set ON_ERROR_STOP on\n")
	b.WriteString("-- generated by collcheck\n")
	b.WriteString("-- note: locale files were probed before these statements run; a file\n")
	b.WriteString("-- rewritten after the probe is not detected until the next run\n")
	for _, s := range p.Statements {
		if s.Comment != "" {
			b.WriteString("-- ")
			b.WriteString(s.Comment)
			b.WriteString("\n")
		}
		if s.SQL != "" {
			b.WriteString(s.InlineSQL())
			b.WriteString(";\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// QuoteIdent double-quotes a SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QualifyIdent returns a quoted schema-qualified identifier.
func QualifyIdent(schema, name string) string {
	return QuoteIdent(schema) + "." + QuoteIdent(name)
}

// quoteLiteral single-quotes a SQL string literal.
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func renderLiteral(arg any) string {
	switch v := arg.(type) {
	case string:
		return quoteLiteral(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return quoteLiteral(fmt.Sprint(v))
	}
}
