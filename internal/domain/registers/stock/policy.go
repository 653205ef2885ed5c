package stock

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/types"
	"bahikhata/pkg/logger"
)

// PolicyMode decides what happens when the over-sell expression fails.
type PolicyMode string

const (
	// ModeAllow skips evaluation entirely.
	ModeAllow PolicyMode = "allow"
	// ModeWarn logs a warning and lets the posting proceed.
	ModeWarn PolicyMode = "warn"
	// ModeBlock rejects the posting.
	ModeBlock PolicyMode = "block"
)

// DefaultPolicyExpression is the stock sufficiency rule evaluated
// before a SALES posting.
const DefaultPolicyExpression = "requested <= available"

// OversellPolicy evaluates a configurable CEL expression against each
// outgoing line. The expression sees `item_name` (string) and
// `requested`/`available` (doubles in display units) and must yield a
// bool; false means the line violates the policy.
type OversellPolicy struct {
	mode    PolicyMode
	program cel.Program
}

// NewOversellPolicy compiles the expression. An empty expression falls
// back to DefaultPolicyExpression.
func NewOversellPolicy(mode PolicyMode, expression string) (*OversellPolicy, error) {
	p := &OversellPolicy{mode: mode}
	if mode == ModeAllow {
		return p, nil
	}

	if expression == "" {
		expression = DefaultPolicyExpression
	}

	env, err := cel.NewEnv(
		cel.Variable("item_name", cel.StringType),
		cel.Variable("requested", cel.DoubleType),
		cel.Variable("available", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create policy env: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile policy expression %q: %w", expression, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("policy expression %q must return bool, got %s", expression, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build policy program: %w", err)
	}

	p.program = program
	return p, nil
}

// Mode returns the configured mode.
func (p *OversellPolicy) Mode() PolicyMode { return p.mode }

// Check evaluates the policy for one outgoing line. In block mode a
// violation returns INSUFFICIENT_STOCK; in warn mode it is logged and
// the posting proceeds.
func (p *OversellPolicy) Check(ctx context.Context, itemName string, requested, available types.Quantity) error {
	if p == nil || p.mode == ModeAllow {
		return nil
	}

	out, _, err := p.program.ContextEval(ctx, map[string]any{
		"item_name": itemName,
		"requested": requested.Float64(),
		"available": available.Float64(),
	})
	if err != nil {
		return fmt.Errorf("evaluate oversell policy: %w", err)
	}

	ok, isBool := out.Value().(bool)
	if !isBool {
		return fmt.Errorf("oversell policy returned %T, want bool", out.Value())
	}
	if ok {
		return nil
	}

	if p.mode == ModeBlock {
		return apperror.NewInsufficientStock(itemName, requested.Float64(), available.Float64())
	}

	logger.Warn(ctx, "oversell policy violation",
		"item", itemName,
		"requested", requested.String(),
		"available", available.String(),
	)
	return nil
}
