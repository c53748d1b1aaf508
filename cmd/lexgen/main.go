// Command lexgen compiles a token catalogue into Go lexer tables.
//
// The catalogue is an ordered YAML list of token declarations; the output
// is a single generated source file exposing DFA_delta, DFA_getKind and
// the start/invalid state constants.
package main

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/coregx/lexgen"
	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/emit"
)

type options struct {
	Catalogue     string
	Output        string
	Package       string
	GenViaTable   bool
	GenViaSwitch  bool
	MinAlgoO2     bool
	MinAlgoO4     bool
	UnifyTokKinds bool
	Verbose       bool
	Silent        bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Generate deterministic longest-match lexer tables from a token catalogue.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Catalogue, "catalogue", "c", "", "token catalogue file (YAML)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "a.inc", "output file for the generated tables"),
		flagSet.StringVar(&opts.Package, "pkg", "lexer", "package clause of the generated file"),
		flagSet.BoolVar(&opts.GenViaTable, "gen-via-table", false, "emit the transition function as a lookup table (default)"),
		flagSet.BoolVar(&opts.GenViaSwitch, "gen-via-switch", false, "emit the transition function as nested switches"),
	)

	flagSet.CreateGroup("minimisation", "Minimisation",
		flagSet.BoolVar(&opts.MinAlgoO2, "use-min-algo-o2", false, "minimise with the reverse-edge worklist algorithm (default)"),
		flagSet.BoolVar(&opts.MinAlgoO4, "use-min-algo-o4", false, "minimise with the fixed-point pair scan"),
		flagSet.BoolVar(&opts.UnifyTokKinds, "unify-token-kinds", false, "merge otherwise-equivalent terminal states with differing kinds"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "print state counts for NFA, DFA and minimised DFA"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "errors only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Catalogue == "" {
		gologger.Fatal().Msgf("no catalogue file given (use -catalogue)")
	}
	if opts.GenViaTable && opts.GenViaSwitch {
		gologger.Fatal().Msgf("-gen-via-table and -gen-via-switch are mutually exclusive")
	}
	if opts.MinAlgoO2 && opts.MinAlgoO4 {
		gologger.Fatal().Msgf("-use-min-algo-o2 and -use-min-algo-o4 are mutually exclusive")
	}
	return opts
}

func main() {
	opts := parseFlags()

	if !fileutil.FileExists(opts.Catalogue) {
		gologger.Fatal().Msgf("catalogue file %q does not exist", opts.Catalogue)
	}
	cat, err := catalogue.Load(opts.Catalogue)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
	for _, warning := range cat.LintLiteralOverlap() {
		gologger.Warning().Msgf("%s", warning)
	}

	genOpts := lexgen.DefaultOptions()
	genOpts.Emit.Package = opts.Package
	if opts.GenViaSwitch {
		genOpts.Emit.Mode = emit.ModeSwitch
	}
	if opts.MinAlgoO4 {
		genOpts.Minimize.Algorithm = dfa.AlgoO4
	}
	genOpts.Minimize.UnifyKinds = opts.UnifyTokKinds

	min, stats, err := lexgen.Compile(cat, genOpts.Minimize)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
	gologger.Verbose().Msgf("NFA states:    %d", stats.NFAStates)
	gologger.Verbose().Msgf("DFA states:    %d", stats.DFAStates)
	gologger.Verbose().Msgf("minDFA states: %d", stats.MinDFAStates)

	if err := emit.WriteFile(opts.Output, min, genOpts.Emit); err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
	gologger.Info().Msgf("wrote %s (%d states)", opts.Output, stats.MinDFAStates)
}
