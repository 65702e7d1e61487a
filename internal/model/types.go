package model

import "strings"

// collectionPrefixes are the parameterized container shapes recognized when
// classifying field relationships. Map-like containers report the value type.
var collectionPrefixes = []struct {
	prefix   string
	mapValue bool
}{
	{"List<", false},
	{"ArrayList<", false},
	{"LinkedList<", false},
	{"Set<", false},
	{"HashSet<", false},
	{"TreeSet<", false},
	{"Collection<", false},
	{"Iterable<", false},
	{"Queue<", false},
	{"Deque<", false},
	{"Map<", true},
	{"HashMap<", true},
	{"TreeMap<", true},
}

// CollectionElementType detects whether a declared type is a parameterized
// collection or an array, and returns its element type. For maps the value
// type is the element. The second return is false for scalar types.
func CollectionElementType(declared string) (string, bool) {
	declared = strings.TrimSpace(declared)

	if strings.HasSuffix(declared, "[]") {
		base := strings.TrimSpace(strings.TrimSuffix(declared, "[]"))
		if base == "" {
			return "", false
		}
		return base, true
	}

	for _, cp := range collectionPrefixes {
		if !strings.HasPrefix(declared, cp.prefix) {
			continue
		}
		inner := typeArguments(declared)
		if inner == "" {
			return "", false
		}
		args := splitTypeArguments(inner)
		if len(args) == 0 {
			return "", false
		}
		if cp.mapValue {
			if len(args) < 2 {
				return "", false
			}
			return args[1], true
		}
		return args[0], true
	}

	return "", false
}

// typeArguments returns the text between the outermost angle brackets.
func typeArguments(declared string) string {
	open := strings.Index(declared, "<")
	close := strings.LastIndex(declared, ">")
	if open < 0 || close <= open {
		return ""
	}
	return declared[open+1 : close]
}

// splitTypeArguments splits "K, V" on top-level commas, ignoring commas
// nested inside further type arguments such as "String, List<Item>".
func splitTypeArguments(inner string) []string {
	var args []string
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(inner[start:]); tail != "" {
		args = append(args, tail)
	}
	return args
}

// primitiveTypes are language primitives, boxed equivalents, and String:
// never relationship targets.
var primitiveTypes = map[string]struct{}{
	"boolean": {}, "byte": {}, "char": {}, "short": {}, "int": {},
	"long": {}, "float": {}, "double": {}, "void": {},
	"Boolean": {}, "Byte": {}, "Character": {}, "Short": {}, "Integer": {},
	"Long": {}, "Float": {}, "Double": {}, "String": {}, "Number": {},
}

// IsPrimitive reports whether a type name is a primitive, a boxed primitive,
// or String.
func IsPrimitive(name string) bool {
	_, ok := primitiveTypes[name]
	return ok
}
