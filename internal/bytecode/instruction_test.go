package bytecode

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []Instruction{
		Pack(ADD, 1, 2, 3),
		Pack(MOV, 250, 7, 0),
		PackJump(JMP, 0x1234),
		PackCondJump(JZ, 9, 0xBEEF&0x7FFF),
		Pack(HLT, 0, 0, 0),
	}

	for _, inst := range cases {
		got := Decode(inst.Data())
		if got != inst {
			t.Fatalf("round trip mismatch: %#08x != %#08x", uint32(got), uint32(inst))
		}
	}
}

func TestPackFields(t *testing.T) {
	inst := Pack(ADD, 1, 2, 3)
	if inst.Opcode() != ADD || inst.Op1() != 1 || inst.Op2() != 2 || inst.Op3() != 3 {
		t.Fatalf("unexpected fields: %+v", inst)
	}
}

func TestJumpTarget(t *testing.T) {
	inst := PackJump(JMP, 300)
	if inst.JumpTarget() != 300 {
		t.Fatalf("JumpTarget() = %d, want 300", inst.JumpTarget())
	}
	cond := PackCondJump(JZ, 5, 300)
	if cond.Op1() != 5 || cond.JumpTarget() != 300 {
		t.Fatalf("PackCondJump mismatch: op1=%d target=%d", cond.Op1(), cond.JumpTarget())
	}
}

func TestStringTagging(t *testing.T) {
	v := MakeStringValue(42)
	if !IsString(v) {
		t.Fatalf("MakeStringValue(42) should be tagged as a string")
	}
	if StringIndex(v) != 42 {
		t.Fatalf("StringIndex() = %d, want 42", StringIndex(v))
	}
	if IsString(42) {
		t.Fatalf("plain integer 42 must not be tagged as a string")
	}
}
