// Package filter restricts loaded sheets to the rows matching a CEL
// expression.
//
// Expressions see two variables: row, a map from header to cell text, and
// index, the zero-based position of the row in the unfiltered sheet.
//
//	row["region"] == "EU" && int(row["qty"]) > 10
package filter

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/tabv/pkg/loader"
)

// Predicate is a compiled row filter.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("row", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("index", cel.IntType),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr. The expression must produce a bool.
func Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program filter: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate against one row.
func (p *Predicate) Match(headers, row []string, index int) (bool, error) {
	vars := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			vars[h] = row[i]
		}
	}
	out, _, err := p.prg.Eval(map[string]any{"row": vars, "index": int64(index)})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T", out.Value())
	}
	return b, nil
}

// Apply returns a copy of sheet holding only matching rows. Rows whose
// evaluation fails are dropped; the first such error is returned alongside
// the filtered sheet together with the number of failures.
func (p *Predicate) Apply(sheet loader.Sheet) (loader.Sheet, int, error) {
	out := loader.Sheet{Name: sheet.Name, Headers: sheet.Headers}
	var (
		failures int
		first    error
	)
	for i, row := range sheet.Rows {
		ok, err := p.Match(sheet.Headers, row, i)
		if err != nil {
			failures++
			if first == nil {
				first = fmt.Errorf("row %d: %w", i, err)
			}
			continue
		}
		if ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, failures, first
}

// Loader wraps next so every loaded sheet is filtered by p.
func Loader(next loader.Loader, p *Predicate, log logr.Logger) loader.Loader {
	return loader.Func(func(path string) ([]loader.Sheet, error) {
		sheets, err := next.Load(path)
		if err != nil {
			return nil, err
		}
		for i, sheet := range sheets {
			filtered, failures, ferr := p.Apply(sheet)
			if ferr != nil {
				log.V(1).Info("filter evaluation failed", "path", path, "sheet", sheet.Name, "failures", failures, "error", ferr.Error())
			}
			log.V(1).Info("filtered sheet", "path", path, "sheet", sheet.Name, "kept", len(filtered.Rows), "total", len(sheet.Rows))
			sheets[i] = filtered
		}
		return sheets, nil
	})
}
