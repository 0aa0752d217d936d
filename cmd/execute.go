package cmd

import (
	"fmt"
	"os"

	"udbc/arch"
	"udbc/compile"
	"udbc/gen"
	"udbc/report"
	"udbc/syntax"

	"github.com/ComedicChimera/olive"
	"github.com/davecgh/go-spew/spew"
)

// Version is the tool version reported by `udbc version`.
const Version = "0.3.0"

// Execute runs the main `udbc` application.  All batch behavior lives here:
// the compile packages only ever return errors, and this layer decides to
// print them and exit nonzero.
func Execute() {
	cli := olive.NewCLI("udbc", "udbc compiles and checks ISA behavior descriptions", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "compile and type-check a source unit", true)
	checkCmd.AddPrimaryArg("file", "the source unit to check", true)
	checkCmd.AddStringArg("config", "c", "the architecture configuration file", false)
	checkCmd.AddFlag("dump-ast", "da", "dump the frozen syntax tree after checking")

	fmtCmd := cli.AddSubcommand("fmt", "pretty-print a source unit in canonical form", true)
	fmtCmd.AddPrimaryArg("file", "the source unit to format", true)

	docCmd := cli.AddSubcommand("doc", "render a source unit's option documentation", true)
	docCmd.AddPrimaryArg("file", "the source unit to document", true)
	docCmd.AddStringArg("config", "c", "the architecture configuration file", false)

	cli.AddSubcommand("version", "print the udbc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	report.Initialize(result.Arguments["loglevel"].(string))

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult)
	case "fmt":
		execFmtCommand(subResult)
	case "doc":
		execDocCommand(subResult)
	case "version":
		report.PrintInfoMessage("udbc Version", Version)
	}
}

// -----------------------------------------------------------------------------

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(result *olive.ArgParseResult) {
	c := newCompiler(result)

	path, _ := result.PrimaryArg()
	unit, err := c.CompileFile(path)
	if err != nil {
		exitWithError(err, unitSource(err, unit))
	}

	if result.HasFlag("dump-ast") {
		spew.Dump(unit.File)
	}

	report.PrintInfoMessage("Check", path+" ok")
}

// execFmtCommand executes the fmt subcommand.  Formatting is purely
// syntactic: the unit is parsed but never frozen or checked, so no
// configuration is needed.
func execFmtCommand(result *olive.ArgParseResult) {
	path, _ := result.PrimaryArg()

	data, err := os.ReadFile(path)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		os.Exit(1)
	}

	f, err := syntax.ParseFile(path, string(data))
	if err != nil {
		exitWithError(err, string(data))
	}

	fmt.Println(gen.Idl(f))
}

// execDocCommand executes the doc subcommand.
func execDocCommand(result *olive.ArgParseResult) {
	c := newCompiler(result)

	path, _ := result.PrimaryArg()
	unit, err := c.CompileFile(path)
	if err != nil {
		exitWithError(err, unitSource(err, unit))
	}

	fmt.Println(gen.OptionAdoc(unit.File))
}

// -----------------------------------------------------------------------------

// newCompiler builds a compiler from the subcommand's --config argument, or
// over a default RV64 configuration when none is given.
func newCompiler(result *olive.ArgParseResult) *compile.Compiler {
	var cfg *arch.Config

	if cfgArgVal, ok := result.Arguments["config"]; ok {
		loaded, err := arch.LoadConfig(cfgArgVal.(string))
		if err != nil {
			report.PrintErrorMessage("Config Error", err)
			os.Exit(1)
		}

		cfg = loaded
	} else {
		cfg = &arch.Config{Name: "default", XLen: 64}
	}

	c, err := compile.NewFromConfig(cfg)
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		os.Exit(1)
	}

	return c
}

// unitSource extracts the source text to excerpt in a diagnostic.  The
// failing unit may be an included file rather than the root unit, so the text
// is re-read from the unit path the error names when possible.
func unitSource(err error, unit *compile.Unit) string {
	cerr, ok := err.(*report.Error)
	if !ok {
		return ""
	}

	if unit != nil && cerr.Unit == unit.Path {
		return unit.Src
	}

	if data, rerr := os.ReadFile(cerr.Unit); rerr == nil {
		return string(data)
	}

	return ""
}

// exitWithError prints a compilation failure and terminates with a nonzero
// status.
func exitWithError(err error, src string) {
	if cerr, ok := err.(*report.Error); ok {
		report.Display(cerr, src)
	} else {
		report.PrintErrorMessage("Error", err)
	}

	os.Exit(1)
}
