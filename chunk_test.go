package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkWriteAndConstants(t *testing.T) {
	chunk := NewChunk()
	ci := chunk.AddConstant(numberValue(1.2))
	chunk.WriteOp(OpConstant, 123)
	chunk.Write(byte(ci), 123)
	chunk.WriteOp(OpReturn, 123)

	assert.Equal(t, 3, chunk.Count())
	assert.Equal(t, []int{123, 123, 123}, chunk.Lines)
	assert.Equal(t, float64(1.2), chunk.Constants[ci].Number())
}

func TestChunkDisassembleSimpleProgram(t *testing.T) {
	chunk := NewChunk()
	ci := chunk.AddConstant(numberValue(1.2))
	chunk.WriteOp(OpConstant, 1)
	chunk.Write(byte(ci), 1)
	chunk.WriteOp(OpNegate, 1)
	chunk.WriteOp(OpReturn, 2)

	var buf bytes.Buffer
	chunk.Disassemble(&buf, "test chunk")

	out := buf.String()
	assert.Contains(t, out, "== test chunk ==")
	assert.Contains(t, out, "OP_CONSTANT")
	assert.Contains(t, out, "OP_NEGATE")
	assert.Contains(t, out, "OP_RETURN")
}

func TestChunkDisassembleJump(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteOp(OpJumpIfFalse, 1)
	chunk.Write(0, 1)
	chunk.Write(2, 1)
	chunk.WriteOp(OpPop, 1)

	var buf bytes.Buffer
	next := chunk.DisassembleInstruction(&buf, 0)

	assert.Equal(t, 3, next)
	assert.Contains(t, buf.String(), "OP_JUMP_IF_FALSE")
	assert.Contains(t, buf.String(), "-> 5")
}
