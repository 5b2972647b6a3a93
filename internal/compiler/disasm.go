package compiler

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of chunk, in the teacher's
// `== name ==` / per-instruction-offset style (internal/vm/disasm.go).
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)

	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&sb, chunk, offset)
	}
	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", chunk.Lines[offset])
	}

	op := Op(chunk.Code[offset])
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpSurplus,
		OpEqual, OpGreaterThan, OpLessThan, OpNot,
		OpNullConst, OpExitScope, OpReturn, OpAccess, OpIndex:
		return simple(sb, op, offset)
	case OpNumberConst, OpStringConst:
		return constantOperand(sb, op, chunk, offset)
	case OpConstructList, OpJumpRel, OpJumpRelUnless, OpCall, OpStore,
		OpConstructForeignFunction, OpNativeRecord:
		return u16Operand(sb, op, chunk, offset)
	case OpLoad:
		slot := ReadU16(chunk.Code, offset+1)
		depth := ReadU16(chunk.Code, offset+3)
		fmt.Fprintf(sb, "%-22s slot=%d depth=%d\n", op, slot, depth)
		return offset + 5
	case OpConstructFunction:
		idIdx := ReadU16(chunk.Code, offset+1)
		bodyLen := ReadU16(chunk.Code, offset+3)
		fmt.Fprintf(sb, "%-22s id=%d bodyLen=%d\n", op, idIdx, bodyLen)
		return offset + 5
	case OpConstructBlock:
		ftIdx := ReadU16(chunk.Code, offset+1)
		bodyLen := ReadU16(chunk.Code, offset+3)
		fmt.Fprintf(sb, "%-22s fieldTable=%d bodyLen=%d\n", op, ftIdx, bodyLen)
		return offset + 5
	case OpBlock:
		return blockInstruction(sb, chunk, offset)
	default:
		fmt.Fprintf(sb, "unknown opcode %d\n", op)
		return offset + 1
	}
}

func simple(sb *strings.Builder, op Op, offset int) int {
	fmt.Fprintf(sb, "%s\n", op)
	return offset + 1
}

func u16Operand(sb *strings.Builder, op Op, chunk *Chunk, offset int) int {
	v := ReadU16(chunk.Code, offset+1)
	fmt.Fprintf(sb, "%-22s %d\n", op, v)
	return offset + 3
}

func constantOperand(sb *strings.Builder, op Op, chunk *Chunk, offset int) int {
	idx := ReadU16(chunk.Code, offset+1)
	var repr string
	if idx < len(chunk.Constants) {
		repr = chunk.Constants[idx].Inspect()
	}
	fmt.Fprintf(sb, "%-22s %d %q\n", op, idx, repr)
	return offset + 3
}

func blockInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	count := int(chunk.Code[offset+1])
	pos := offset + 2
	fmt.Fprintf(sb, "%-22s sizes=[", OpBlock)
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(sb, "%d", ReadU16(chunk.Code, pos))
		pos += 2
	}
	sb.WriteString("]\n")
	return pos
}
