package vm

// RegisterCount is the fixed size of the VM's register file.
const RegisterCount = 256

// MaxCallDepth bounds the call stack. A CALL to a user function at this
// depth is a RuntimeError.
const MaxCallDepth = 1024

// frame is pushed on every user-function CALL and popped on the matching
// RET. It snapshots the caller's entire register file, so RET can restore
// it verbatim - the calling convention described in spec.md §4.4: the
// callee sees the caller's whole register file (register operands are
// absolute; framePtr is recorded but does not offset them), and every
// register the callee touches is discarded on return except the one slot
// the caller designated to receive the result.
type frame struct {
	returnAddr int
	framePtr   uint8
	paramCount uint8
	resultReg  uint8
	savedRegs  [RegisterCount]uint32
}
