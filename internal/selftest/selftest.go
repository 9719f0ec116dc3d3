// Package selftest implements the --test self-check (spec §6): a fixed
// set of assertions about the CSV codec's quoting and splitting rules,
// the same properties the original tool's runTests() checked before a
// release.
package selftest

import (
	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/pkg/errors"
)

type check struct {
	name string
	fn   func() error
}

func eq(name string, got, want any) error {
	if got != want {
		return errors.Errorf("%s: got %v, want %v", name, got, want)
	}
	return nil
}

func eqStrings(name string, got, want []string) error {
	if len(got) != len(want) {
		return errors.Errorf("%s: got %d fields %v, want %d fields %v", name, len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			return errors.Errorf("%s: field %d: got %q, want %q", name, i, got[i], want[i])
		}
	}
	return nil
}

func checks() []check {
	return []check{
		{"quote(abc)", func() error { return eq("quote(abc)", csvcodec.Quote("abc", '"'), "abc") }},
		{"quote(a\"b\"c)", func() error {
			return eq("quote(a\"b\"c)", csvcodec.Quote(`a"b"c`, '"'), `"a""b""c"`)
		}},
		{"unquote(\"xyz\")", func() error { return eq("unquote", csvcodec.Unquote(`"xyz"`, '"'), "xyz") }},
		{"unquote(xyz)", func() error { return eq("unquote", csvcodec.Unquote("xyz", '"'), "xyz") }},
		{"unquote(\"xy\"\"z\")", func() error {
			return eq("unquote", csvcodec.Unquote(`"xy""z"`, '"'), `xy"z`)
		}},
		{"quote with alternate quote char", func() error {
			return eq("quote(abc,'a')", csvcodec.Quote("abc", 'a'), "aaabca")
		}},
		{"split(a,b,c)", func() error {
			return eqStrings("split", csvcodec.Split("a,b,c", ',', '"'), []string{"a", "b", "c"})
		}},
		{"split(quoted field)", func() error {
			return eqStrings("split", csvcodec.Split(`"a,b",c`, ',', '"'), []string{`"a,b"`, "c"})
		}},
		{"split+unquote(quoted field)", func() error {
			v := csvcodec.Split(`"a,b",c`, ',', '"')
			return eq("unquote(v[0])", csvcodec.Unquote(v[0], '"'), "a,b")
		}},
		{"split(doubled quote)", func() error {
			return eqStrings("split", csvcodec.Split(`"a,""b",c`, ',', '"'), []string{`"a,""b"`, "c"})
		}},
		{"split+unquote(doubled quote)", func() error {
			v := csvcodec.Split(`"a,""b",c`, ',', '"')
			return eq("unquote(v[0])", csvcodec.Unquote(v[0], '"'), `a,"b`)
		}},
		{"split(re-entering quoted region)", func() error {
			v := csvcodec.Split(`"a"x"a",b,c`, ',', '"')
			if err := eq("len(v)", len(v), 3); err != nil {
				return err
			}
			if err := eq("unquote(v[0])", csvcodec.Unquote(v[0], '"'), "aa"); err != nil {
				return err
			}
			return eqStrings("v[1:]", v[1:], []string{"b", "c"})
		}},
	}
}

// Run executes every check and logs each result; it returns an error
// (the first failure's) once all checks have run.
func Run(logger logging.Logger) error {
	var firstErr error
	for _, c := range checks() {
		if err := c.fn(); err != nil {
			logger.Errorf("FAILED: %s: %v", c.name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Infof("ok: %s", c.name)
	}
	return firstErr
}
