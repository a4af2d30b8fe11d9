package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary values into random readable names. Names are
// generated lazily and never forgotten, so the memo grows by one entry per
// value named. Pointers are remembered by address only, which keeps the
// objects they point to collectable. This is helpful for telling apart mesh
// builds and other pointers in debug logs.

var (
	memo   = make(map[interface{}]string)
	memoMu sync.Mutex
)

func init() {
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	key := obj
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return "Ø"
		}
		key = address{v.Type(), v.Pointer()}
	default:
		if !v.Type().Comparable() {
			return fmt.Sprintf("%T", obj)
		}
	}

	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memo[key]; ok {
		return r
	}
	r := title(petname.Adjective()) + title(petname.Name())
	memo[key] = r
	return r
}

type address struct {
	t   reflect.Type
	ptr uintptr
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
