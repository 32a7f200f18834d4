package compiler

import (
	"fortio.org/safecast"

	"juno/internal/ast"
	"juno/internal/bytecode"
)

// compileExpression lowers expr and returns the register holding its
// result.
func (c *Compiler) compileExpression(expr ast.Expr) (uint8, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return c.compileNumberLit(e)
	case *ast.StringLit:
		return c.compileStringLit(e)
	case *ast.Ident:
		return c.compileIdent(e)
	case *ast.BinaryExpr:
		return c.compileBinaryExpr(e)
	case *ast.CallExpr:
		return c.compileCallExpr(e)
	case *ast.FuncExpr:
		// Closures capturing environments are out of scope (spec
		// Non-goals); there is no register-representable value for a
		// bare function pointer in this ISA, so a lambda can only ever
		// appear as dead syntax today.
		return 0, errorf("lambda expressions cannot be lowered to a register value")
	default:
		return 0, errorf("unknown expression kind %T", expr)
	}
}

func (c *Compiler) compileNumberLit(lit *ast.NumberLit) (uint8, error) {
	reg, err := c.regs.alloc()
	if err != nil {
		return 0, err
	}
	// MOV's immediate is 8 bits wide; every Number is deliberately
	// truncated into it (spec fidelity, not a bug - see DESIGN.md).
	imm := uint8(int64(lit.Value))
	c.emit(bytecode.Pack(bytecode.MOV, reg, imm, 0))
	return reg, nil
}

func (c *Compiler) compileStringLit(lit *ast.StringLit) (uint8, error) {
	reg, err := c.regs.alloc()
	if err != nil {
		return 0, err
	}
	idx, err := c.internString(lit.Value)
	if err != nil {
		return 0, err
	}
	c.emit(bytecode.Pack(bytecode.LOADS, reg, idx, 0))
	return reg, nil
}

func (c *Compiler) compileIdent(id *ast.Ident) (uint8, error) {
	if reg, ok := c.findVariable(id.Name); ok {
		return reg, nil
	}
	return 0, errorf("undefined variable %q", id.Name)
}

func (c *Compiler) compileBinaryExpr(bin *ast.BinaryExpr) (uint8, error) {
	lhsReg, err := c.compileExpression(bin.LHS)
	if err != nil {
		return 0, err
	}
	rhsReg, err := c.compileExpression(bin.RHS)
	if err != nil {
		return 0, err
	}
	resultReg, err := c.regs.alloc()
	if err != nil {
		return 0, err
	}

	op, err := binaryOpcode(bin.Op)
	if err != nil {
		return 0, err
	}
	c.emit(bytecode.Pack(op, lhsReg, rhsReg, resultReg))
	return resultReg, nil
}

func binaryOpcode(op ast.BinaryOp) (bytecode.Opcode, error) {
	switch op {
	case ast.Add:
		return bytecode.ADD, nil
	case ast.Sub:
		return bytecode.SUB, nil
	case ast.Mul:
		return bytecode.MUL, nil
	case ast.Div:
		return bytecode.DIV, nil
	case ast.Eq:
		return bytecode.EQ, nil
	case ast.Neq:
		return bytecode.NEQ, nil
	case ast.Lt:
		return bytecode.LT, nil
	case ast.Gt:
		return bytecode.GT, nil
	case ast.Lte:
		return bytecode.LTE, nil
	case ast.Gte:
		return bytecode.GTE, nil
	default:
		return 0, errorf("unknown binary operator %v", op)
	}
}

// compileCallExpr lowers a call's arguments into consecutive registers
// starting at firstReg, then emits CALL. The callee's result lands in
// firstReg via the RET/frame-result-register convention.
func (c *Compiler) compileCallExpr(call *ast.CallExpr) (uint8, error) {
	var firstReg uint8
	var err error

	if len(call.Args) == 0 {
		firstReg, err = c.regs.alloc()
		if err != nil {
			return 0, err
		}
	} else {
		firstReg, err = c.compileExpression(call.Args[0])
		if err != nil {
			return 0, err
		}
		for i := 1; i < len(call.Args); i++ {
			want := int(firstReg) + i
			reg, err := c.compileExpression(call.Args[i])
			if err != nil {
				return 0, err
			}
			if int(reg) != want {
				slot, err := safecast.Conv[uint8](want)
				if err != nil {
					return 0, errorf("call %q has too many arguments to address", call.Callee)
				}
				c.emit(bytecode.Pack(bytecode.COPY, slot, reg, 0))
				if c.regs.save() <= want {
					c.regs.restore(want + 1)
				}
			}
		}
	}

	argCount, err := safecast.Conv[uint8](len(call.Args))
	if err != nil {
		return 0, errorf("call %q has too many arguments to encode in a single byte", call.Callee)
	}

	fnAddr, err := c.resolveCallee(call.Callee)
	if err != nil {
		return 0, err
	}
	c.emit(bytecode.Pack(bytecode.CALL, fnAddr, firstReg, argCount))
	return firstReg, nil
}
