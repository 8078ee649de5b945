package xsd

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// SimpleType is a built-in type or a restriction of one.
type SimpleType struct {
	Name xml.Name
	Base *SimpleType

	primitive string
	space     whiteSpace
	enum      []string
	patterns  []*regexp.Regexp
	minLength int
	maxLength int
	node      *node
	done      bool
}

type whiteSpace int

const (
	preserve whiteSpace = iota
	replace
	collapse
)

// builtins maps each supported XML Schema built-in type to the primitive it
// derives from and its whitespace handling.
var builtins = map[string]struct {
	primitive string
	space     whiteSpace
}{
	"anySimpleType":      {"string", preserve},
	"string":             {"string", preserve},
	"normalizedString":   {"string", replace},
	"token":              {"string", collapse},
	"language":           {"string", collapse},
	"NMTOKEN":            {"string", collapse},
	"Name":               {"string", collapse},
	"NCName":             {"string", collapse},
	"ID":                 {"string", collapse},
	"IDREF":              {"string", collapse},
	"anyURI":             {"anyURI", collapse},
	"boolean":            {"boolean", collapse},
	"decimal":            {"decimal", collapse},
	"integer":            {"integer", collapse},
	"long":               {"integer", collapse},
	"int":                {"int", collapse},
	"nonNegativeInteger": {"nonNegativeInteger", collapse},
	"positiveInteger":    {"positiveInteger", collapse},
	"double":             {"double", collapse},
	"float":              {"double", collapse},
	"dateTime":           {"dateTime", collapse},
	"date":               {"date", collapse},
	"time":               {"time", collapse},
	"base64Binary":       {"base64Binary", collapse},
	"hexBinary":          {"hexBinary", collapse},
}

var builtinTypes = map[string]*SimpleType{}

func init() {
	for name, b := range builtins {
		builtinTypes[name] = &SimpleType{
			Name:      xml.Name{Space: Namespace, Local: name},
			primitive: b.primitive,
			space:     b.space,
			minLength: -1,
			maxLength: -1,
			done:      true,
		}
	}
}

func builtin(local string) *SimpleType { return builtinTypes[local] }

func (c *compiler) simpleType(st *SimpleType) error {
	if st.done {
		return nil
	}
	st.done = true
	st.minLength, st.maxLength = -1, -1
	r := st.node.first("restriction")
	if r == nil {
		return fmt.Errorf("line %d: simpleType %s: only restriction is supported", st.node.line, st.Name.Local)
	}
	base := builtin("anySimpleType")
	if ref := r.attr("base"); ref != "" {
		_, b, err := c.lookupType(r, ref)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("line %d: simpleType %s restricts a complex type", r.line, st.Name.Local)
		}
		base = b
	} else if inner := r.first("simpleType"); inner != nil {
		b := &SimpleType{node: inner}
		if err := c.simpleType(b); err != nil {
			return err
		}
		base = b
	}
	st.Base = base
	st.primitive = base.primitive
	st.space = base.space
	st.minLength, st.maxLength = base.minLength, base.maxLength
	var alternatives []string
	for _, f := range r.children {
		v := f.attr("value")
		switch f.name.Local {
		case "enumeration":
			st.enum = append(st.enum, v)
		case "pattern":
			alternatives = append(alternatives, v)
		case "minLength", "length", "maxLength":
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("line %d: bad %s %q", f.line, f.name.Local, v)
			}
			if f.name.Local != "maxLength" {
				st.minLength = n
			}
			if f.name.Local != "minLength" {
				st.maxLength = n
			}
		case "whiteSpace":
			switch v {
			case "preserve":
				st.space = preserve
			case "replace":
				st.space = replace
			case "collapse":
				st.space = collapse
			}
		case "simpleType", "annotation":
		default:
			return fmt.Errorf("line %d: facet xs:%s is not supported", f.line, f.name.Local)
		}
	}
	if len(alternatives) > 0 {
		// Patterns in one step are alternatives; steps are conjunctive.
		parts := make([]string, len(alternatives))
		for i, a := range alternatives {
			re, err := translatePattern(a)
			if err != nil {
				return fmt.Errorf("line %d: pattern %q: %w", r.line, a, err)
			}
			parts[i] = re
		}
		re, err := regexp.Compile(`^(?:` + strings.Join(parts, "|") + `)$`)
		if err != nil {
			return fmt.Errorf("line %d: pattern: %w", r.line, err)
		}
		st.patterns = append(st.patterns, re)
	}
	return nil
}

// translatePattern rewrites the XML Schema regular expression dialect into
// RE2 syntax. Only the multi-character escapes differ for the patterns in
// use; character class subtraction is rejected.
func translatePattern(p string) (string, error) {
	if subtractsClass(p) {
		return "", fmt.Errorf("character class subtraction is not supported")
	}
	r := strings.NewReplacer(
		`\i`, `[\p{L}_:]`,
		`\I`, `[^\p{L}_:]`,
		`\c`, `[\p{L}\p{N}._:\-]`,
		`\C`, `[^\p{L}\p{N}._:\-]`,
	)
	return r.Replace(p), nil
}

// subtractsClass reports whether p uses "-[" inside a character class.
func subtractsClass(p string) bool {
	depth := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '-':
			if depth > 0 && i+1 < len(p) && p[i+1] == '[' {
				return true
			}
		}
	}
	return false
}

// facetError explains why a value failed a simple type.
type facetError struct {
	facet string
}

func (e *facetError) Error() string {
	if e.facet == "" {
		return "the value is not valid for its datatype"
	}
	return fmt.Sprintf("The %s constraint failed", e.facet)
}

// Check validates a lexical value against the type.
func (st *SimpleType) Check(value string) error {
	return st.check(normalize(value, st.space))
}

func (st *SimpleType) check(v string) error {
	if st.Base != nil {
		if err := st.Base.check(v); err != nil {
			return err
		}
	} else if !lexical(st.primitive, v) {
		return &facetError{}
	}
	if len(st.enum) > 0 {
		found := false
		for _, e := range st.enum {
			if e == v {
				found = true
				break
			}
		}
		if !found {
			return &facetError{facet: "Enumeration"}
		}
	}
	for _, re := range st.patterns {
		if !re.MatchString(v) {
			return &facetError{facet: "Pattern"}
		}
	}
	if st.primitive == "string" || st.primitive == "anyURI" {
		n := utf8.RuneCountInString(v)
		if st.minLength >= 0 && n < st.minLength {
			return &facetError{facet: "MinLength"}
		}
		if st.maxLength >= 0 && n > st.maxLength {
			return &facetError{facet: "MaxLength"}
		}
	}
	return nil
}

// Label is the name used for the type in diagnostics.
func (st *SimpleType) Label() string {
	for t := st; t != nil; t = t.Base {
		if t.Name.Local != "" {
			if t.Name.Space == "" {
				return t.Name.Local
			}
			return t.Name.Space + ":" + t.Name.Local
		}
	}
	return "anySimpleType"
}

func normalize(v string, ws whiteSpace) string {
	switch ws {
	case replace:
		return strings.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}, v)
	case collapse:
		return strings.Join(strings.Fields(v), " ")
	}
	return v
}

var (
	integerRE  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalRE  = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	doubleRE   = regexp.MustCompile(`^([+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?|-?INF|NaN)$`)
	dateTimeRE = regexp.MustCompile(`^-?([0-9]{4,})-([0-9]{2})-([0-9]{2})T([0-9]{2}):([0-9]{2}):([0-9]{2})(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})?$`)
	dateRE     = regexp.MustCompile(`^-?[0-9]{4,}-[0-9]{2}-[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`)
	timeRE     = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})?$`)
)

func lexical(primitive, v string) bool {
	switch primitive {
	case "boolean":
		return v == "true" || v == "false" || v == "1" || v == "0"
	case "decimal":
		return decimalRE.MatchString(v)
	case "integer":
		return integerRE.MatchString(v)
	case "int":
		_, err := strconv.ParseInt(strings.TrimPrefix(v, "+"), 10, 32)
		return err == nil
	case "nonNegativeInteger", "positiveInteger":
		if !integerRE.MatchString(v) {
			return false
		}
		digits := strings.TrimLeft(strings.TrimLeft(v, "+-"), "0")
		if strings.HasPrefix(v, "-") {
			return digits == "" && primitive == "nonNegativeInteger"
		}
		return digits != "" || primitive == "nonNegativeInteger"
	case "double":
		return doubleRE.MatchString(v)
	case "dateTime":
		m := dateTimeRE.FindStringSubmatch(v)
		if m == nil {
			return false
		}
		// 24:00:00 is the end of day and is allowed.
		if m[4] == "24" && m[5] == "00" && m[6] == "00" {
			return validDate(m[1], m[2], m[3])
		}
		return validDate(m[1], m[2], m[3]) && validClock(m[4], m[5], m[6])
	case "date":
		if !dateRE.MatchString(v) {
			return false
		}
		_, err := time.Parse("2006-01-02", strings.TrimLeft(v, "-")[:10])
		return err == nil
	case "time":
		return timeRE.MatchString(v) && validClock(v[0:2], v[3:5], v[6:8])
	case "base64Binary":
		_, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(v, " ", ""))
		return err == nil
	case "hexBinary":
		_, err := hex.DecodeString(v)
		return err == nil
	}
	return true
}

func validDate(y, m, d string) bool {
	if len(y) > 4 {
		// Years past 9999 are lexically valid; check month and day only.
		y = "2000"
	}
	_, err := time.Parse("2006-01-02", y+"-"+m+"-"+d)
	return err == nil
}

func validClock(h, m, s string) bool {
	_, err := time.Parse("15:04:05", h+":"+m+":"+s)
	return err == nil
}
