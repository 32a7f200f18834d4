package vm

import "juno/internal/bytecode"

// executeOne decodes and executes the instruction at the current pc. Most
// opcodes post-increment pc themselves; JMP/JZ/JNZ and a user-function
// CALL set pc directly and must not be post-incremented again by the
// caller.
func (m *Machine) executeOne() error {
	if m.pc < 0 || m.pc >= len(m.code) {
		return trap("program counter %d is out of bounds", m.pc)
	}

	inst := bytecode.Decode(m.code[m.pc])
	m.profile.count++

	if m.Tracer != nil {
		m.Tracer.trace(m.pc, inst)
	}

	switch inst.Opcode() {
	case bytecode.MOV:
		m.registers[inst.Op1()] = uint32(inst.Op2())
		m.pc++

	case bytecode.COPY:
		m.registers[inst.Op1()] = m.registers[inst.Op2()]
		m.pc++

	case bytecode.LOADS:
		idx := inst.Op2()
		if int(idx) >= len(m.strings) {
			return trap("string pool index %d is out of bounds", idx)
		}
		m.registers[inst.Op1()] = bytecode.MakeStringValue(uint32(idx))
		m.pc++

	case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV:
		if err := m.executeArith(inst); err != nil {
			return err
		}
		m.pc++

	case bytecode.EQ, bytecode.NEQ, bytecode.LT, bytecode.GT, bytecode.LTE, bytecode.GTE:
		if err := m.executeCompare(inst); err != nil {
			return err
		}
		m.pc++

	case bytecode.INC:
		m.registers[inst.Op1()]++
		m.pc++

	case bytecode.DEC:
		m.registers[inst.Op1()]--
		m.pc++

	case bytecode.JMP:
		m.pc = int(inst.JumpTarget())

	case bytecode.JZ:
		if m.registers[inst.Op1()] == 0 {
			m.pc = int(inst.JumpTarget())
		} else {
			m.pc++
		}

	case bytecode.JNZ:
		if m.registers[inst.Op1()] != 0 {
			m.pc = int(inst.JumpTarget())
		} else {
			m.pc++
		}

	case bytecode.CALL:
		return m.executeCall(inst)

	case bytecode.RET:
		m.executeRet()

	case bytecode.PRF:
		m.profile.start()
		m.pc++

	case bytecode.PRFE:
		m.profile.stop()
		m.pc++

	case bytecode.HLT:
		m.halted = true

	default:
		return trap("encountered an unknown opcode %d", inst.Opcode())
	}

	return nil
}

func (m *Machine) operandValues(inst bytecode.Instruction) (uint32, uint32, error) {
	a := m.registers[inst.Op1()]
	b := m.registers[inst.Op2()]
	if bytecode.IsString(a) || bytecode.IsString(b) {
		return 0, 0, trap("arithmetic on a tagged string value is not allowed")
	}
	return a, b, nil
}

func (m *Machine) executeArith(inst bytecode.Instruction) error {
	a, b, err := m.operandValues(inst)
	if err != nil {
		return err
	}

	var result uint32
	switch inst.Opcode() {
	case bytecode.ADD:
		result = a + b
	case bytecode.SUB:
		result = a - b
	case bytecode.MUL:
		result = a * b
	case bytecode.DIV:
		if b == 0 {
			return trap("division by zero")
		}
		result = a / b
	}
	m.registers[inst.Op3()] = result
	return nil
}

func (m *Machine) executeCompare(inst bytecode.Instruction) error {
	a, b, err := m.operandValues(inst)
	if err != nil {
		return err
	}

	var holds bool
	switch inst.Opcode() {
	case bytecode.EQ:
		holds = a == b
	case bytecode.NEQ:
		holds = a != b
	case bytecode.LT:
		holds = a < b
	case bytecode.GT:
		holds = a > b
	case bytecode.LTE:
		holds = a <= b
	case bytecode.GTE:
		holds = a >= b
	}
	if holds {
		m.registers[inst.Op3()] = 1
	} else {
		m.registers[inst.Op3()] = 0
	}
	return nil
}

func (m *Machine) executeCall(inst bytecode.Instruction) error {
	addr := inst.Op1()
	baseReg := inst.Op2()
	argCount := inst.Op3()

	if bytecode.IsNative(addr) {
		fn, ok := m.natives[addr]
		if !ok {
			return trap("unknown native function %d", addr)
		}
		fn(&m.registers, baseReg, argCount, m.strings)
		m.pc++
		return nil
	}

	if len(m.callStack) >= MaxCallDepth {
		return trap("call stack overflow")
	}

	m.callStack = append(m.callStack, frame{
		returnAddr: m.pc + 1,
		framePtr:   m.fp,
		paramCount: argCount,
		resultReg:  baseReg,
		savedRegs:  m.registers,
	})
	m.fp = baseReg
	m.pc = int(addr)
	return nil
}

// executeRet implements the RET calling convention: if the call stack is
// empty the program halts; otherwise the caller's result register (the
// CALL's base register) receives the callee's register 0, and every other
// register is restored verbatim from the frame snapshot taken at CALL time.
func (m *Machine) executeRet() {
	if len(m.callStack) == 0 {
		m.halted = true
		return
	}

	result := m.registers[0]
	top := m.callStack[len(m.callStack)-1]
	m.callStack = m.callStack[:len(m.callStack)-1]

	m.registers = top.savedRegs
	m.pc = top.returnAddr
	m.fp = top.framePtr
	m.registers[top.resultReg] = result
}
