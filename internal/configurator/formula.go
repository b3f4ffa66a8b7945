package configurator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// formulaVars are the only identifiers a pricing formula may reference.
type formulaVars struct {
	Base         decimal.Decimal
	Quantity     decimal.Decimal
	MaterialCost decimal.Decimal
	PrintCost    decimal.Decimal
	OptionCost   decimal.Decimal
}

func (v formulaVars) lookup(name string) (decimal.Decimal, bool) {
	switch name {
	case "BASE":
		return v.Base, true
	case "QTY":
		return v.Quantity, true
	case "MATERIAL_COST":
		return v.MaterialCost, true
	case "PRINT_COST":
		return v.PrintCost, true
	case "OPTION_COST":
		return v.OptionCost, true
	}
	return decimal.Zero, false
}

// evalFormula evaluates an authored pricing formula. The grammar is fixed:
// decimal literals, the five named variables, + - * /, unary minus, and
// parentheses. Anything else is an error, never executed.
func evalFormula(formula string, vars formulaVars) (decimal.Decimal, error) {
	p := &formulaParser{input: formula, vars: vars}
	value, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return decimal.Zero, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

type formulaParser struct {
	input string
	pos   int
	vars  formulaVars
}

// parseExpr handles + and -.
func (p *formulaParser) parseExpr() (decimal.Decimal, error) {
	value, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			value = value.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			value = value.Sub(right)
		default:
			return value, nil
		}
	}
}

// parseTerm handles * and /.
func (p *formulaParser) parseTerm() (decimal.Decimal, error) {
	value, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			value = value.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			value = value.Div(right)
		default:
			return value, nil
		}
	}
}

// parseFactor handles literals, variables, parentheses and unary minus.
func (p *formulaParser) parseFactor() (decimal.Decimal, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis at position %d", p.pos)
		}
		p.pos++
		return value, nil
	case c == '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return value.Neg(), nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case c >= 'A' && c <= 'Z':
		return p.parseVariable()
	}
	return decimal.Zero, fmt.Errorf("unexpected input at position %d", p.pos)
}

func (p *formulaParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}
	value, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *formulaParser) parseVariable() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < 'A' || c > 'Z') && c != '_' {
			break
		}
		p.pos++
	}
	name := p.input[start:p.pos]
	value, ok := p.vars.lookup(name)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown variable %q", name)
	}
	return value, nil
}

func (p *formulaParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *formulaParser) skipSpace() {
	p.pos += len(p.input[p.pos:]) - len(strings.TrimLeft(p.input[p.pos:], " \t"))
}
