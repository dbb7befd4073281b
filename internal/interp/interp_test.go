package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbylang/flowby/internal/action"
	"github.com/flowbylang/flowby/internal/interp"
	"github.com/flowbylang/flowby/internal/parser"
	"github.com/flowbylang/flowby/internal/value"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Log(msg string) { r.lines = append(r.lines, msg) }

func run(t *testing.T, src string) (*interp.Interpreter, *recordingLogger, error) {
	t.Helper()
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations(), "unexpected violations for:\n%s", src)

	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger)
	err := in.Run(prog)
	return in, logger, err
}

func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	src := "let calls = []\n" +
		"function sideEffect():\n" +
		"    calls.append(1)\n" +
		"    return True\n" +
		"let result = False and sideEffect()\n" +
		"log str(len(calls))\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	require.Len(t, logger.lines, 1)
	assert.Equal(t, "0", logger.lines[0], "sideEffect() must not run once the left side of `and` is falsy")
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	src := "let calls = []\n" +
		"function sideEffect():\n" +
		"    calls.append(1)\n" +
		"    return True\n" +
		"let result = True or sideEffect()\n" +
		"log str(len(calls))\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	require.Len(t, logger.lines, 1)
	assert.Equal(t, "0", logger.lines[0])
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	src := "function makeAdder(n):\n" +
		"    let add = (x) => x + n\n" +
		"    return add\n" +
		"let addFive = makeAdder(5)\n" +
		"log str(addFive(10))\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	require.Len(t, logger.lines, 1)
	assert.Equal(t, "15", logger.lines[0])
}

func TestClosuresCapturedInALoopAreIndependent(t *testing.T) {
	src := "let fns = []\n" +
		"for i in range(3):\n" +
		"    let f = () => i\n" +
		"    fns.append(f)\n" +
		"for f in fns:\n" +
		"    log str(f())\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, logger.lines)
}

func TestForEachMultiVarUnpackingWithEnumerate(t *testing.T) {
	src := "let items = [\"a\", \"b\", \"c\"]\n" +
		"for i, v in enumerate(items):\n" +
		"    log str(i) + \":\" + v\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"0:a", "1:b", "2:c"}, logger.lines)
}

func TestWhileGuardRefusesARunawayLoop(t *testing.T) {
	src := "let x = 0\n" +
		"while True:\n" +
		"    x = x + 1\n"
	_, _, err := run(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "while loop exceeded")
}

func TestRecursionIsRefusedByDefault(t *testing.T) {
	src := "function fact(n):\n" +
		"    if n <= 1:\n" +
		"        return 1\n" +
		"    return n * fact(n - 1)\n" +
		"log str(fact(5))\n"
	_, _, err := run(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recursive call")
}

func TestRecursionCanBeAllowedExplicitly(t *testing.T) {
	p := parser.New(
		"function fact(n):\n"+
			"    if n <= 1:\n"+
			"        return 1\n"+
			"    return n * fact(n - 1)\n"+
			"log str(fact(5))\n", "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	logger := &recordingLogger{}
	in := interp.New(action.NewLoggingHost(), logger)
	in.AllowRecursion = true
	err := in.Run(prog)
	require.NoError(t, err)
	require.Len(t, logger.lines, 1)
	assert.Equal(t, "120", logger.lines[0])
}

func TestDomainActionDelegatesToHostAndBindsInto(t *testing.T) {
	src := `extract "#title" into pageTitle` + "\n" + "log pageTitle\n"
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	host := action.NewLoggingHost()
	logger := &recordingLogger{}
	in := interp.New(host, logger)
	err := in.Run(prog)
	require.NoError(t, err)

	require.Len(t, host.Calls, 1)
	assert.Equal(t, "extract", host.Calls[0].Kind)
	assert.Equal(t, []string{""}, logger.lines)
}

func TestExitStopsExecutionAndSetsExitCode(t *testing.T) {
	src := "log \"before\"\n" +
		"exit 2 \"bye\"\n" +
		"log \"after\"\n"
	in, logger, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, int64(2), in.ExitCode())
	assert.Equal(t, []string{"before", "bye"}, logger.lines)
}

func TestUndefinedVariableIsCaughtAtParseTime(t *testing.T) {
	p := parser.New("log undefinedThing\n", "test.flow")
	p.ParseProgram()
	violations := p.Violations()
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0].Message, "undefined variable")
}

func TestPageNamespaceDelegatesToHostWithPagePrefix(t *testing.T) {
	src := "let title = page.title()\n"
	p := parser.New(src, "test.flow")
	prog := p.ParseProgram()
	require.Empty(t, p.Violations())

	host := action.NewLoggingHost()
	in := interp.New(host, &recordingLogger{})
	err := in.Run(prog)
	require.NoError(t, err)
	require.Len(t, host.Calls, 1)
	assert.Equal(t, "page.title", host.Calls[0].Kind)
}

func TestResponseIsAlwaysDefinedButStartsNone(t *testing.T) {
	src := "log str(response)\n"
	_, logger, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, []string{value.Str(value.None)}, logger.lines)
}
