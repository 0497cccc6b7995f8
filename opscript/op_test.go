package opscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	script := `
# mixed operations
push_front 1
push_back  2
APPEND hello world
pop
pop_back
front
back
len
is_empty
clear
print
`
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Equal(t, []Op{
		{Code: OpPushFront, Arg: "1", Line: 3},
		{Code: OpPushBack, Arg: "2", Line: 4},
		{Code: OpPushBack, Arg: "hello world", Line: 5},
		{Code: OpPopFront, Line: 6},
		{Code: OpPopBack, Line: 7},
		{Code: OpFront, Line: 8},
		{Code: OpBack, Line: 9},
		{Code: OpLen, Line: 10},
		{Code: OpIsEmpty, Line: 11},
		{Code: OpClear, Line: 12},
		{Code: OpPrint, Line: 13},
	}, ops)
	require.Equal(t, "push_back hello world", ops[2].String())
	require.Equal(t, "pop_front", ops[3].String())
}

func TestParse_Errors(t *testing.T) {
	script := "push_front\nshuffle\nlen 3\npop_front\n"
	ops, err := Parse(strings.NewReader(script))
	require.Nil(t, ops)
	require.Error(t, err)
	msg := err.Error()
	require.True(t, strings.HasPrefix(msg, "[opscript] parse: "))
	require.Contains(t, msg, "line 1: push_front requires a value")
	require.Contains(t, msg, `line 2: unknown op "shuffle"`)
	require.Contains(t, msg, "line 3: len takes no value")
}

func TestParse_WhiteSpaceAndLongLines(t *testing.T) {
	long := strings.Repeat("x", 100*1024)
	script := "push_front\t5\npush_back \t a b\t\nlen\t\nappend " + long + "\n"
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	require.Equal(t, []Op{
		{Code: OpPushFront, Arg: "5", Line: 1},
		{Code: OpPushBack, Arg: "a b", Line: 2},
		{Code: OpLen, Line: 3},
		{Code: OpPushBack, Arg: long, Line: 4},
	}, ops)

	_, err = Parse(strings.NewReader("append " + strings.Repeat("y", MaxLineSize+1) + "\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "token too long")
}

func TestOpCodeString(t *testing.T) {
	require.Equal(t, "unknown", _opMax.String())
	for code := OpPushFront; code < _opMax; code++ {
		parsed, ok := lookupOpCode(code.String())
		require.True(t, ok)
		require.Equal(t, code, parsed)
	}
}
