//go:build logless

package logger

// Log is a no-op logger for size-constrained builds (e.g. embedded
// targets of the CLI) built with -tags logless.
var Log = EmptyLog{}

// Component mirrors the zerolog-backed Component but returns the
// same no-op logger regardless of name.
func Component(string) EmptyLog { return Log }

// EmptyLog implements the subset of zerolog.Logger's fluent API this
// module uses, discarding everything.
type EmptyLog struct{}

func (l EmptyLog) Debug() EmptyLog   { return l }
func (l EmptyLog) Error() EmptyLog   { return l }
func (l EmptyLog) Warning() EmptyLog { return l }
func (l EmptyLog) Warn() EmptyLog    { return l }
func (l EmptyLog) Info() EmptyLog    { return l }

func (l EmptyLog) Msg(string) EmptyLog { return l }
func (l EmptyLog) Err(error) EmptyLog  { return l }

func (l EmptyLog) Int(string, int) EmptyLog       { return l }
func (l EmptyLog) Str(string, string) EmptyLog    { return l }
func (l EmptyLog) Float(string, float64) EmptyLog { return l }

func (l EmptyLog) Ints(string, []int) EmptyLog       { return l }
func (l EmptyLog) Strs(string, []string) EmptyLog    { return l }
func (l EmptyLog) Floats(string, []float64) EmptyLog { return l }
