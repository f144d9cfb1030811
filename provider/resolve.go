package provider

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolve navigates a dot-delimited path through source and any nested
// providers underneath it.
//
// Search order per hop: when the current provider supports dotted names, the
// longest prefix of the remaining segments is tried as a single name first,
// falling back prefix by prefix down to one segment; otherwise only the
// first segment is tried. The first prefix that exists with a non-nil value
// wins: if it consumed the whole path that value is the result, otherwise
// the value must itself be representable as a provider (see FromValue) and
// resolution recurses on the remaining suffix.
//
// The boolean result is false when no prefix matched (absent). A non-nil
// error means the path led into a value that cannot act as a nested
// provider; that is a hard failure of this particular lookup, not an
// absence.
func Resolve(path string, want reflect.Type, source NamedValueProvider) (any, bool, error) {
	return resolveSegments(strings.Split(path, "."), want, source)
}

func resolveSegments(segments []string, want reflect.Type, source NamedValueProvider) (any, bool, error) {
	longest := 1
	if source.SupportsDottedNames() {
		longest = len(segments)
	}

	for n := longest; n >= 1; n-- {
		name := strings.Join(segments[:n], ".")
		if !source.ExistsByName(name, want) {
			continue
		}

		value, ok := source.ValueByName(name, want)
		if !ok || value == nil {
			continue
		}

		if n == len(segments) {
			return value, true, nil
		}

		nested, err := FromValue(value)
		if err != nil {
			return nil, false, fmt.Errorf("resolving %q at %q: %w", strings.Join(segments, "."), name, err)
		}

		return resolveSegments(segments[n:], want, nested)
	}

	return nil, false, nil
}
