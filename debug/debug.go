package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Apply bool
	Index bool
	Build bool
	Eval  bool
	Diff  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Apply = boolEnv("GROVE_DEBUG_APPLY")
	d.Index = boolEnv("GROVE_DEBUG_INDEX")
	d.Build = boolEnv("GROVE_DEBUG_BUILD")
	d.Eval = boolEnv("GROVE_DEBUG_EVAL")
	d.Diff = boolEnv("GROVE_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Apply() bool {
	return d.Apply
}
func Index() bool {
	return d.Index
}
func Build() bool {
	return d.Build
}
func Eval() bool {
	return d.Eval
}
func Diff() bool {
	return d.Diff
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
