// Command lexgen-lexer tokenises a file with tables built from a token
// catalogue.
//
// The tables are compiled in memory from the same catalogue the
// generator would consume, so the token stream matches what generated
// code produces. -repeat reruns the lex loop as a benchmark aid.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/coregx/lexgen"
	"github.com/coregx/lexgen/catalogue"
	"github.com/coregx/lexgen/lexer"
)

type options struct {
	Input      string
	Catalogue  string
	PrintName  bool
	PrintSpell bool
	Repeat     int
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Tokenise a file with a catalogue-driven DFA lexer.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "", "file to tokenise"),
		flagSet.StringVarP(&opts.Catalogue, "catalogue", "c", "", "token catalogue file (YAML)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVar(&opts.PrintName, "print-tok-name", false, "print one token kind name per line"),
		flagSet.BoolVar(&opts.PrintSpell, "print-tok-spell", false, "print each token's source text per line"),
		flagSet.IntVar(&opts.Repeat, "repeat", 1, "rerun the lex loop N times"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}
	if opts.Input == "" {
		gologger.Fatal().Msgf("no input file given (use -input)")
	}
	if opts.Catalogue == "" {
		gologger.Fatal().Msgf("no catalogue file given (use -catalogue)")
	}
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}
	return opts
}

func main() {
	opts := parseFlags()

	if !fileutil.FileExists(opts.Input) {
		gologger.Fatal().Msgf("input file %q does not exist", opts.Input)
	}
	buf, err := os.ReadFile(opts.Input)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}

	cat, err := catalogue.Load(opts.Catalogue)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
	min, _, err := lexgen.Compile(cat, lexgen.DefaultOptions().Minimize)
	if err != nil {
		gologger.Fatal().Msgf("%s", err)
	}
	tables := min.Tables()

	for i := 0; i < opts.Repeat; i++ {
		l := lexer.New(tables, buf)
		for {
			tok, err := l.Lex()
			if err != nil {
				gologger.Fatal().Msgf("%s", err)
			}
			if opts.PrintName {
				fmt.Println(cat.KindName(tok.Kind))
			}
			if opts.PrintSpell {
				fmt.Println(string(tok.Spelling))
			}
			if tok.Is(catalogue.EOF) {
				break
			}
		}
	}
}
