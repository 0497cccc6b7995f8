package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

const maxStackDepth = 32

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) fileLine() (string, int) {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFile", 0
	}
	return fn.FileLine(frame.pc())
}

func (frame Frame) name() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - equivalent to %s:%d
// %+s - <function-name>\n\t<full path>
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	file, line := frame.fileLine()
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, file)
		} else {
			_, _ = io.WriteString(s, path.Base(file))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(line))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	file, line := frame.fileLine()
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(file)
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(line))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

func callers(skip int) []Frame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

// ErrorStack is an error carrying the call stack of where it was
// created or wrapped. It can be inlined into zap fields, so the stack
// is written as structured data instead of a plain text blob.
type ErrorStack interface {
	error
	zapcore.ObjectMarshaler
	Unwrap() []error
	Frames() []Frame
}

type errorStack struct {
	msg    string
	errs   []error
	frames []Frame
}

var _ ErrorStack = (*errorStack)(nil)

func (es *errorStack) Error() string {
	if es == nil {
		return ""
	}
	builder := strings.Builder{}
	builder.WriteString(es.msg)
	for i, err := range es.errs {
		if err == nil {
			continue
		}
		if builder.Len() > 0 {
			if i == 0 && len(es.msg) > 0 {
				builder.WriteString(": ")
			} else {
				builder.WriteString("; ")
			}
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}

func (es *errorStack) Unwrap() []error {
	if es == nil {
		return nil
	}
	return es.errs
}

func (es *errorStack) Frames() []Frame {
	if es == nil {
		return nil
	}
	return es.frames
}

// %s, %v print the message only, %+v appends the stack.
func (es *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, es.Error())
		if s.Flag('+') {
			for _, frame := range es.frames {
				_, _ = io.WriteString(s, "\n")
				frame.Format(s, verb)
			}
		}
	case 's':
		_, _ = io.WriteString(s, es.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", es.Error())
	}
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	return enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, frame := range es.frames {
			text, _ := frame.MarshalText()
			arr.AppendByteString(text)
		}
		return nil
	}))
}

func NewErrorStack(msg string) error {
	return &errorStack{
		msg:    msg,
		frames: callers(3),
	}
}

// WrapErrorStack keeps the stack of the first ErrorStack found in err,
// otherwise records the current one.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	var es *errorStack
	if errors.As(err, &es) {
		return err
	}
	return &errorStack{
		errs:   multierr.Errors(err),
		frames: callers(3),
	}
}

func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	frames := callers(3)
	var es *errorStack
	if errors.As(err, &es) {
		frames = es.frames
	}
	return &errorStack{
		msg:    msg,
		errs:   multierr.Errors(err),
		frames: frames,
	}
}
