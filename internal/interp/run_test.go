package interp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/interp"
	"github.com/flowbylang/flowby/internal/parser"
	"github.com/flowbylang/flowby/internal/value"
)

func TestRunSourceCompletesANormalProgram(t *testing.T) {
	logger := &recordingLogger{}
	outcome, diags := interp.RunSource("log \"ok\"\n", "test.flow", action.NewLoggingHost(), logger)
	require.Empty(t, diags)
	assert.True(t, outcome.Completed)
	assert.Equal(t, []string{"ok"}, logger.lines)
}

func TestRunSourceExitZeroIsCompleted(t *testing.T) {
	outcome, diags := interp.RunSource("exit 0\n", "test.flow", action.NewLoggingHost(), &recordingLogger{})
	require.Empty(t, diags)
	assert.True(t, outcome.Completed)
}

func TestRunSourceNonZeroExitIsFailed(t *testing.T) {
	outcome, diags := interp.RunSource("exit 3 \"gave up\"\n", "test.flow", action.NewLoggingHost(), &recordingLogger{})
	require.Empty(t, diags)
	assert.False(t, outcome.Completed)
	assert.Equal(t, 3, outcome.Code)
	assert.Equal(t, "gave up", outcome.Message)
}

func TestRunSourceParseFailureIsFailed(t *testing.T) {
	outcome, diags := interp.RunSource("log missing\n", "test.flow", action.NewLoggingHost(), &recordingLogger{})
	require.NotEmpty(t, diags)
	assert.False(t, outcome.Completed)
}

func TestRunSourceRuntimeErrorIsFailed(t *testing.T) {
	src := "let xs = [1]\nlog str(xs[5])\n"
	outcome, diags := interp.RunSource(src, "test.flow", action.NewLoggingHost(), &recordingLogger{})
	require.NotEmpty(t, diags)
	assert.False(t, outcome.Completed)
	assert.Contains(t, outcome.Message, "out of range")
}

func TestRuntimeErrorCarriesCallFrames(t *testing.T) {
	src := "function boom():\n" +
		"    return missingFn()\n" +
		"let x = boom()\n"
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	// missingFn is unknown to the parser too, so skip static checks here
	// and drive the interpreter directly with the partial program.
	_ = p.Violations()

	in := interp.New(action.NewLoggingHost(), &recordingLogger{})
	err := in.Run(prog)
	require.Error(t, err)
	require.NotNil(t, in.RuntimeErr)
	require.NotEmpty(t, in.RuntimeErr.Frames)
	assert.Equal(t, "boom", in.RuntimeErr.Frames[0].FunctionName)
}

func TestInputUsesDefaultWhenNonInteractive(t *testing.T) {
	src := "let name = input(\"Who?\", default=\"nobody\")\nlog name\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"nobody"}, logger.lines)
}

func TestInputWithoutDefaultFailsWhenNonInteractive(t *testing.T) {
	src := "let name = input(\"Who?\")\nlog name\n"
	_, _, err := run(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive")
}

func TestConsoleInputReadsAndConverts(t *testing.T) {
	src := "let age = input(\"Age?\", type=\"int\")\nlog str(age + 1)\n"
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	var echo strings.Builder
	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger,
		interp.WithInput(interp.NewConsoleInput(strings.NewReader("41\n"), &echo)))
	require.NoError(t, in.Run(prog))

	assert.Equal(t, []string{"42"}, logger.lines)
	assert.Contains(t, echo.String(), "Age?")
}

func TestConsoleInputBlankLineFallsBackToDefault(t *testing.T) {
	src := "let who = input(\"Who?\", default=\"world\")\nlog who\n"
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger,
		interp.WithInput(interp.NewConsoleInput(strings.NewReader("\n"), nil)))
	require.NoError(t, in.Run(prog))
	assert.Equal(t, []string{"world"}, logger.lines)
}

func TestDivisionByZeroIsARuntimeError(t *testing.T) {
	_, _, err := run(t, "let x = 1 / 0\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestForLoopOverDictYieldsKeys(t *testing.T) {
	src := "let d = {a: 1, b: 2}\n" +
		"for k in d:\n" +
		"    log k\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, logger.lines)
}

func TestForLoopUnpackArityMismatchFails(t *testing.T) {
	src := "for a, b in [[1, 2, 3]]:\n    log str(a)\n"
	_, _, err := run(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unpack")
}

func TestWithGlobalInjectsAHostBinding(t *testing.T) {
	p := parser.New("log greeting\n", "test.flow")
	p.RegisterHostName("greeting")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger,
		interp.WithGlobal("greeting", value.String("hello from the host")))
	require.NoError(t, in.Run(prog))
	assert.Equal(t, []string{"hello from the host"}, logger.lines)
}

func TestRunSourceRegistersHostGlobalsForTheParse(t *testing.T) {
	logger := &recordingLogger{}
	outcome, diags := interp.RunSource("log greeting\n", "test.flow",
		action.NewLoggingHost(), logger,
		interp.WithGlobal("greeting", value.String("hi")))
	require.Empty(t, diags)
	assert.True(t, outcome.Completed)
	assert.Equal(t, []string{"hi"}, logger.lines)
}

func TestNamedClosureCounterWhenNestedFunctionsAllowed(t *testing.T) {
	src := "function makeCounter():\n" +
		"    let count = 0\n" +
		"    function inc():\n" +
		"        count = count + 1\n" +
		"        return count\n" +
		"    return inc\n" +
		"let c = makeCounter()\n" +
		"let a = c()\n" +
		"let b = c()\n" +
		"log str(a) + str(b)\n"
	p := parser.New(src, "test.flow")
	p.SetAllowNestedFunctions(true)
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger)
	require.NoError(t, in.Run(prog))
	assert.Equal(t, []string{"12"}, logger.lines)
}
