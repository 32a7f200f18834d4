package bytecode

// Instruction is a single packed 32-bit VM word laid out as
// [opcode:8][op1:8][op2:8][op3:8].
type Instruction uint32

// Pack builds an Instruction word from an opcode and its three raw
// 8-bit operand fields.
func Pack(op Opcode, op1, op2, op3 uint8) Instruction {
	return Instruction(uint32(op)<<24 | uint32(op1)<<16 | uint32(op2)<<8 | uint32(op3))
}

// PackJump builds a JMP instruction. The 16-bit target address occupies
// op2:op3 (big-endian); op1 is unused.
func PackJump(op Opcode, target uint16) Instruction {
	return Pack(op, 0, byte(target>>8), byte(target))
}

// PackCondJump builds a JZ/JNZ instruction: op1 holds the condition
// register, and the 16-bit target address occupies op2:op3 (big-endian).
func PackCondJump(op Opcode, reg uint8, target uint16) Instruction {
	return Pack(op, reg, byte(target>>8), byte(target))
}

// Opcode extracts the instruction's opcode field.
func (i Instruction) Opcode() Opcode { return Opcode(i >> 24) }

// Op1 extracts the first 8-bit operand.
func (i Instruction) Op1() uint8 { return uint8(i >> 16) }

// Op2 extracts the second 8-bit operand.
func (i Instruction) Op2() uint8 { return uint8(i >> 8) }

// Op3 extracts the third 8-bit operand.
func (i Instruction) Op3() uint8 { return uint8(i) }

// JumpTarget reinterprets op2:op3 as a single big-endian 16-bit address,
// the layout used by JMP, JZ and JNZ.
func (i Instruction) JumpTarget() uint16 {
	return uint16(i.Op2())<<8 | uint16(i.Op3())
}

// Data returns the raw packed word, e.g. for storage in a Program.
func (i Instruction) Data() uint32 { return uint32(i) }

// Decode reinterprets a raw word as an Instruction. Decode and Data are
// exact inverses: Decode(x).Data() == x for every x.
func Decode(word uint32) Instruction { return Instruction(word) }
