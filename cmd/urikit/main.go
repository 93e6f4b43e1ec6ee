// Command urikit parses, resolves and normalizes URI references from the
// command line.
//
// Usage:
//
//	urikit parse <uri>...
//	urikit resolve <base> <ref>...
//	urikit norm <uri>...
//
// With -q only results are printed to stdout; otherwise every reference is
// reported through structured logging. The exit code is 1 when any input
// fails to parse or resolve.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ghettovoice/uriref"
	"github.com/ghettovoice/uriref/internal/log"
)

var (
	devMode = flag.Bool("dev", false, "verbose developer logging")
	quiet   = flag.Bool("q", false, "print results only")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logger := log.Def
	if *devMode {
		logger = log.Dev
	}
	if *quiet {
		logger = log.Noop
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	var failed bool
	switch cmd := args[0]; cmd {
	case "parse":
		for _, arg := range args[1:] {
			failed = !runParse(logger, arg) || failed
		}
	case "resolve":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		base, err := uriref.Parse(args[1])
		if err != nil {
			logger.Error("parse base", "input", args[1], "error", err)
			os.Exit(1)
		}
		for _, arg := range args[2:] {
			failed = !runResolve(logger, base, arg) || failed
		}
	case "norm":
		for _, arg := range args[1:] {
			failed = !runNorm(logger, arg) || failed
		}
	default:
		usage()
		os.Exit(2)
	}
	if failed {
		os.Exit(1)
	}
}

func runParse(logger *slog.Logger, arg string) bool {
	u, err := uriref.Parse(arg)
	if err != nil {
		logger.Error("parse", "input", arg, "error", err)
		return false
	}
	attrs := []any{"uri", u, "path", u.Path().String()}
	if s, ok := u.Scheme(); ok {
		attrs = append(attrs, "scheme", s.String())
	}
	if a, ok := u.Authority(); ok {
		attrs = append(attrs, "host", a.HostParsed())
		if p, ok := a.Port(); ok {
			attrs = append(attrs, "port", p.String())
		}
	}
	if q, ok := u.Query(); ok {
		attrs = append(attrs, "query", q.String())
	}
	if f, ok := u.Fragment(); ok {
		attrs = append(attrs, "fragment", f.String())
	}
	logger.Info("parsed", attrs...)
	fmt.Println(u)
	return true
}

func runResolve(logger *slog.Logger, base *uriref.Uri, arg string) bool {
	ref, err := uriref.Parse(arg)
	if err != nil {
		logger.Error("parse ref", "input", arg, "error", err)
		return false
	}
	target, err := ref.ResolveAgainst(base)
	if err != nil {
		logger.Error("resolve", "base", base, "ref", ref, "error", err)
		return false
	}
	logger.Info("resolved", "base", base, "ref", ref, "target", target)
	fmt.Println(target)
	return true
}

func runNorm(logger *slog.Logger, arg string) bool {
	u, err := uriref.Parse(arg)
	if err != nil {
		logger.Error("parse", "input", arg, "error", err)
		return false
	}
	n := u.Normalize()
	logger.Info("normalized", "input", u, "result", n)
	fmt.Println(n)
	return true
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  urikit [-dev] [-q] parse <uri>...
  urikit [-dev] [-q] resolve <base> <ref>...
  urikit [-dev] [-q] norm <uri>...
`)
	flag.PrintDefaults()
}
