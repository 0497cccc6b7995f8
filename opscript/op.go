package opscript

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"github.com/benz9527/xlist/lib/infra"
)

type OpCode uint8

const (
	OpPushFront OpCode = iota
	OpPushBack
	OpPopFront
	OpPopBack
	OpFront
	OpBack
	OpLen
	OpIsEmpty
	OpClear
	OpPrint
	_opMax
)

var opNames = [_opMax]string{
	OpPushFront: "push_front",
	OpPushBack:  "push_back",
	OpPopFront:  "pop_front",
	OpPopBack:   "pop_back",
	OpFront:     "front",
	OpBack:      "back",
	OpLen:       "len",
	OpIsEmpty:   "is_empty",
	OpClear:     "clear",
	OpPrint:     "print",
}

var opAliases = map[string]OpCode{
	"append": OpPushBack,
	"pop":    OpPopFront,
}

func (code OpCode) String() string {
	if code >= _opMax {
		return "unknown"
	}
	return opNames[code]
}

func (code OpCode) hasArg() bool {
	return code == OpPushFront || code == OpPushBack
}

func (code OpCode) isMutation() bool {
	switch code {
	case OpPushFront, OpPushBack, OpPopFront, OpPopBack, OpClear:
		return true
	default:
	}
	return false
}

func lookupOpCode(name string) (OpCode, bool) {
	name = strings.ToLower(name)
	for code, n := range opNames {
		if n == name {
			return OpCode(code), true
		}
	}
	code, ok := opAliases[name]
	return code, ok
}

// MaxLineSize is the longest script line Parse accepts.
const MaxLineSize = 1 << 20

// Op is one line of an operation script.
type Op struct {
	Code OpCode
	Arg  string
	Line int
}

func (op Op) String() string {
	if op.Code.hasArg() {
		return op.Code.String() + " " + op.Arg
	}
	return op.Code.String()
}

// Parse reads one operation per line. Blank lines and lines starting
// with '#' are skipped. The value of a push is the rest of the line,
// so it may contain spaces. The op and its value are separated by any
// white space. Lines longer than MaxLineSize fail the parse.
// All the malformed lines are reported.
func Parse(r io.Reader) ([]Op, error) {
	var (
		ops     = make([]Op, 0, 16)
		merr    error
		scanner = bufio.NewScanner(r)
		lineNo  = 0
	)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineSize)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		name, arg := line, ""
		if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
			name, arg = line[:i], strings.TrimSpace(line[i:])
		}
		code, ok := lookupOpCode(name)
		switch {
		case !ok:
			merr = multierr.Append(merr, fmt.Errorf("line %d: unknown op %q", lineNo, name))
		case code.hasArg() && len(arg) == 0:
			merr = multierr.Append(merr, fmt.Errorf("line %d: %s requires a value", lineNo, code))
		case !code.hasArg() && len(arg) > 0:
			merr = multierr.Append(merr, fmt.Errorf("line %d: %s takes no value", lineNo, code))
		default:
			ops = append(ops, Op{Code: code, Arg: arg, Line: lineNo})
		}
	}
	if err := scanner.Err(); err != nil {
		merr = multierr.Append(merr, err)
	}
	if merr != nil {
		return nil, infra.WrapErrorStackWithMessage(merr, "[opscript] parse")
	}
	return ops, nil
}
