package compiler

import (
	"juno/internal/ast"
	"juno/internal/bytecode"
)

func (c *Compiler) compileStatement(s ast.Stmt) error {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		_, err := c.compileExpression(stmt.Expr)
		return err

	case *ast.VarDecl:
		return c.compileVarDecl(stmt)

	case *ast.Assign:
		return c.compileAssign(stmt)

	case *ast.CompoundAssign:
		return c.compileCompoundAssign(stmt)

	case *ast.Block:
		return c.compileBlock(stmt)

	case *ast.Return:
		return c.compileReturn(stmt)

	case *ast.If:
		return c.compileIf(stmt)

	case *ast.ExternProto:
		// A bare declaration: nothing to lower. Native dispatch is
		// resolved against the fixed native table in resolveCallee,
		// not against declared extern signatures.
		return nil

	case *ast.FnProto:
		return errorf("nested function prototype %q is not a top-level statement", stmt.Name)

	default:
		return errorf("unknown statement kind %T", stmt)
	}
}

func (c *Compiler) compileVarDecl(stmt *ast.VarDecl) error {
	var reg uint8
	var err error

	if stmt.Comptime {
		if value, ok := foldComptime(stmt.Init); ok {
			reg, err = c.compileExpression(&ast.NumberLit{Value: value, Pos: stmt.Pos})
		} else {
			reg, err = c.compileExpression(stmt.Init)
		}
	} else {
		reg, err = c.compileExpression(stmt.Init)
	}
	if err != nil {
		return err
	}

	// The initializer's register becomes the variable's register: no COPY
	// is emitted, the binding simply aliases it.
	return c.declare(stmt.Name, reg)
}

func (c *Compiler) compileAssign(stmt *ast.Assign) error {
	varReg, ok := c.findVariable(stmt.Name)
	if !ok {
		return errorf("undefined variable %q", stmt.Name)
	}

	mark := c.regs.save()
	valueReg, err := c.compileExpression(stmt.Value)
	if err != nil {
		return err
	}

	if valueReg != varReg {
		c.emit(bytecode.Pack(bytecode.COPY, varReg, valueReg, 0))
	}
	if int(valueReg) >= mark {
		c.regs.restore(mark)
	}
	return nil
}

func (c *Compiler) compileCompoundAssign(stmt *ast.CompoundAssign) error {
	varReg, ok := c.findVariable(stmt.Name)
	if !ok {
		return errorf("undefined variable %q", stmt.Name)
	}

	mark := c.regs.save()
	rhsReg, err := c.compileExpression(stmt.Value)
	if err != nil {
		return err
	}

	op, err := arithOpcode(stmt.Op.BinaryOp())
	if err != nil {
		return err
	}
	c.emit(bytecode.Pack(op, varReg, rhsReg, varReg))

	if int(rhsReg) >= mark {
		c.regs.restore(mark)
	}
	return nil
}

func (c *Compiler) compileBlock(stmt *ast.Block) error {
	if stmt.Profiled {
		c.emit(bytecode.Pack(bytecode.PRF, 0, 0, 0))
	}

	c.enterScope()
	for _, inner := range stmt.Body {
		if err := c.compileStatement(inner); err != nil {
			return err
		}
	}
	if err := c.exitScope(); err != nil {
		return err
	}

	if stmt.Profiled {
		c.emit(bytecode.Pack(bytecode.PRFE, 0, 0, 0))
	}
	return nil
}

func (c *Compiler) compileReturn(stmt *ast.Return) error {
	if stmt.Value != nil {
		reg, err := c.compileExpression(stmt.Value)
		if err != nil {
			return err
		}
		if reg != 0 {
			c.emit(bytecode.Pack(bytecode.COPY, 0, reg, 0))
		}
	}
	c.emit(bytecode.Pack(bytecode.RET, 0, 0, 0))
	return nil
}

func (c *Compiler) compileIf(stmt *ast.If) error {
	condReg, err := c.compileExpression(stmt.Cond)
	if err != nil {
		return err
	}

	jzAddr := c.emit(bytecode.PackCondJump(bytecode.JZ, condReg, 0))

	if err := c.compileBlock(stmt.Then); err != nil {
		return err
	}

	hasElse := stmt.ElseIf != nil || stmt.Else != nil
	var jmpAddr int
	if hasElse {
		jmpAddr = c.emit(bytecode.PackJump(bytecode.JMP, 0))
	}

	elseTarget, err := c.here()
	if err != nil {
		return err
	}
	c.patchCondJump(jzAddr, elseTarget)

	switch {
	case stmt.ElseIf != nil:
		if err := c.compileStatement(stmt.ElseIf); err != nil {
			return err
		}
	case stmt.Else != nil:
		if err := c.compileBlock(stmt.Else); err != nil {
			return err
		}
	}

	if hasElse {
		endTarget, err := c.here()
		if err != nil {
			return err
		}
		c.patchJump(jmpAddr, endTarget)
	}
	return nil
}

func arithOpcode(op ast.BinaryOp) (bytecode.Opcode, error) {
	switch op {
	case ast.Add:
		return bytecode.ADD, nil
	case ast.Sub:
		return bytecode.SUB, nil
	case ast.Mul:
		return bytecode.MUL, nil
	case ast.Div:
		return bytecode.DIV, nil
	default:
		return 0, errorf("operator %v cannot be used as a compound-assignment opcode", op)
	}
}
