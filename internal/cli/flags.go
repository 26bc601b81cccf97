package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Ning0612/osfind/internal/domain"
)

// findOptions also accept the single-dash spelling used by find(1).
var findOptions = map[string]bool{
	"inum":   true,
	"name":   true,
	"size":   true,
	"nlinks": true,
	"exec":   true,
}

// valueFlags consume the following argument as their value.
var valueFlags = map[string]bool{
	"inum":       true,
	"name":       true,
	"size":       true,
	"nlinks":     true,
	"exec":       true,
	"config":     true,
	"log-level":  true,
	"log-format": true,
}

// NormalizeArgs rewrites find-style options such as -name into their
// double-dash form so pflag can parse them. The argument following a value
// flag is passed through untouched, so "-size -20" keeps its value.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			out = append(out, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "--") && findOptions[name] {
			arg = "-" + arg
		}
		out = append(out, arg)

		if valueFlags[name] && !hasValue && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// onceValue is a pflag.Value that rejects a second occurrence of its flag.
type onceValue struct {
	what  string
	typ   string
	raw   string
	set   bool
	parse func(string) error
}

func newOnceValue(what, typ string, parse func(string) error) *onceValue {
	return &onceValue{what: what, typ: typ, parse: parse}
}

func (v *onceValue) Set(s string) error {
	if v.set {
		return fmt.Errorf("%w: only one %s can be specified", domain.ErrDuplicateOption, v.what)
	}
	if err := v.parse(s); err != nil {
		return err
	}
	v.raw = s
	v.set = true
	return nil
}

func (v *onceValue) String() string { return v.raw }
func (v *onceValue) Type() string   { return v.typ }

// parsePositive parses a decimal count; zero would disable the predicate
func parsePositive(option, s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: bad -%s argument %q", domain.ErrConfigInvalid, option, s)
	}
	return n, nil
}

// registerPredicates binds the search options to opts.
func registerPredicates(fs *pflag.FlagSet, opts *Options) {
	fs.Var(newOnceValue("inode number", "N", func(s string) error {
		n, err := parsePositive("inum", s)
		if err != nil {
			return err
		}
		opts.Filters.InodeTarget = n
		return nil
	}), "inum", "match files with inode number N")

	fs.Var(newOnceValue("file name", "NAME", func(s string) error {
		if s == "" {
			return fmt.Errorf("%w: bad -name argument: empty name", domain.ErrConfigInvalid)
		}
		opts.Filters.NameTarget = s
		return nil
	}), "name", "match files named exactly NAME")

	fs.Var(newOnceValue("file size", "[-|=|+]N", func(s string) error {
		mode, target, err := domain.ParseSize(s)
		if err != nil {
			return err
		}
		opts.Filters.SizeMode = mode
		opts.Filters.SizeTarget = target
		return nil
	}), "size", "match files of at most (-N), exactly (=N or N) or at least (+N) N bytes")

	fs.Var(newOnceValue("hardlinks number", "N", func(s string) error {
		n, err := parsePositive("nlinks", s)
		if err != nil {
			return err
		}
		opts.Filters.NLinksTarget = n
		return nil
	}), "nlinks", "match files with exactly N hard links")

	fs.Var(newOnceValue("execution target", "PROGRAM", func(s string) error {
		if s == "" {
			return fmt.Errorf("%w: bad -exec argument: empty program", domain.ErrConfigInvalid)
		}
		opts.Exec = s
		return nil
	}), "exec", "run PROGRAM with the matching paths as arguments instead of printing them")
}
