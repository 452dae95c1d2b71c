package reactive

import (
	"regexp"
	"strconv"
	"strings"
)

// bailRE matches characters a watch path may not contain.
var bailRE = regexp.MustCompile(`[^\w.$]`)

// parsePath compiles a dot-delimited path into a getter over a root value.
// It returns nil for paths it does not support.
func parsePath(path string) func(root any) any {
	if bailRE.MatchString(path) {
		return nil
	}
	segments := strings.Split(path, ".")
	return func(obj any) any {
		for _, seg := range segments {
			if obj == nil {
				return nil
			}
			obj = lookup(obj, seg)
		}
		return obj
	}
}

func lookup(obj any, seg string) any {
	switch c := obj.(type) {
	case *Object:
		if c == nil {
			return nil
		}
		return c.Get(seg)
	case *List:
		if c == nil {
			return nil
		}
		if i, err := strconv.Atoi(seg); err == nil {
			return c.At(i)
		}
		if seg == "length" {
			return c.Len()
		}
	case map[string]any:
		return c[seg]
	case []any:
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(c) {
			return c[i]
		}
	}
	return nil
}
