// Package host is the table of externally-implemented callees a unit
// can bind function-table slots to instead of compiling IR for them
// (§4.E/§4.G: JSR_EXT and function-table-id-resolved JSR_R address
// this table by index, falling back from exec.Machine.VMFuncs).
package host

import "ssavm/vm/exec"

// Func is a host binding: same shape as exec.HostFunc, given its own
// name in this package so callers don't need to import exec just to
// write one.
type Func = exec.HostFunc

var (
	byName = map[string]int{}
	names  = []string{}
	funcs  = []Func{}
)

// Register adds fn to the table at index idx, recording its name for
// lookup and for config-driven enablement (§4.H). idx must not already
// be taken; growing the table on demand mirrors configparser's model
// map keyed by name, generalized to an index-addressed slice because
// that's what JSR_EXT/JSR_R actually dispatch on.
func Register(name string, idx int, fn Func) {
	for len(funcs) <= idx {
		funcs = append(funcs, nil)
		names = append(names, "")
	}
	funcs[idx] = fn
	names[idx] = name
	byName[name] = idx
}

// Index returns the table slot a binding was registered under, and
// whether one by that name exists.
func Index(name string) (int, bool) {
	idx, ok := byName[name]
	return idx, ok
}

// Table returns the registered bindings as a slice suitable for
// installing directly into exec.Machine.ExtFuncs. Unused slots (gaps
// left by Register growing the table) are nil, which JSR_EXT/JSR_R
// already treat as StopBadFunction.
func Table() []Func {
	out := make([]Func, len(funcs))
	copy(out, funcs)
	return out
}

// Names returns a copy of the name-to-index map, for callers (such as
// config.UnitConfig.Bindings) that need to turn a config file's list
// of enabled binding names back into table slots.
func Names() map[string]int {
	out := make(map[string]int, len(byName))
	for name, idx := range byName {
		out[name] = idx
	}
	return out
}

func init() {
	Register("exit", 0, exitFn)
	Register("abort", 1, abortFn)
	Register("putchar", 2, putcharFn)
	Register("getchar", 3, getcharFn)
	Register("puts", 4, putsFn)
	Register("memset", 5, memsetFn)
}
