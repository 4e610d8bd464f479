package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Scope bool
	Emit  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scope = boolEnv("PLUME_DEBUG_SCOPE")
	d.Emit = boolEnv("PLUME_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scope() bool {
	return d.Scope
}
func Emit() bool {
	return d.Emit
}
