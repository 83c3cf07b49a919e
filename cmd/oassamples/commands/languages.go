package commands

import (
	"errors"
	"flag"
	"slices"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/internal/cliutil"
	"github.com/erraggy/oassamples/snippet"
)

// LanguagesFlags contains flags for the languages command
type LanguagesFlags struct {
	Format string
}

// LanguageInfo describes one built-in language target.
type LanguageInfo struct {
	Target  string `json:"target" yaml:"target"`
	Lang    string `json:"lang" yaml:"lang"`
	Label   string `json:"label" yaml:"label"`
	Default bool   `json:"default" yaml:"default"`
}

// SetupLanguagesFlags creates and configures a FlagSet for the languages command.
func SetupLanguagesFlags() (*flag.FlagSet, *LanguagesFlags) {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	flags := &LanguagesFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oassamples languages [flags]\n\n")
		cliutil.Writef(fs.Output(), "List the built-in code sample languages.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// Languages returns the built-in targets in name order.
func Languages() []LanguageInfo {
	defaults := assembler.DefaultLanguages()
	targets := snippet.NewRegistry().Targets()
	infos := make([]LanguageInfo, 0, len(targets))
	for _, target := range targets {
		infos = append(infos, LanguageInfo{
			Target:  target,
			Lang:    assembler.HighlightTag(target),
			Label:   assembler.Label(target),
			Default: slices.Contains(defaults, target),
		})
	}
	return infos
}

// HandleLanguages executes the languages command
func HandleLanguages(args []string, streams Streams) error {
	fs, flags := SetupLanguagesFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	infos := Languages()
	if flags.Format != FormatText {
		return OutputStructured(streams.Out, infos, flags.Format)
	}

	cliutil.Writef(streams.Out, "%-12s %-8s %-12s %s\n", "TARGET", "LANG", "LABEL", "DEFAULT")
	for _, info := range infos {
		def := ""
		if info.Default {
			def = "yes"
		}
		cliutil.Writef(streams.Out, "%-12s %-8s %-12s %s\n", info.Target, info.Lang, info.Label, def)
	}
	return nil
}
