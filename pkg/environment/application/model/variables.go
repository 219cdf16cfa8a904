package model

import (
	"fmt"
	"sort"
)

type VariableSet map[string]string

func (v VariableSet) Environ() []string {
	environ := make([]string, 0, len(v))
	for key, value := range v {
		environ = append(environ, fmt.Sprintf("%v=%v", key, value))
	}
	sort.Strings(environ)
	return environ
}
