package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/parser"
	"github.com/dgallion1/wordcut/internal/pipeline"
	"github.com/dgallion1/wordcut/internal/report"
)

const stdinSource = "-"

// runMode selects what a clean run prints.
type runMode int

const (
	modeClean runMode = iota
	modeCount
)

func newCleanCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [files...]",
		Short: "Print the cleaned text of each input",
		Long: `Clean prints each input with the selected parts removed.

Options are resolved in order: the profile (--profile or "profile" in
the config file), then "options" from the config file, then --all,
then individual --exclude-* flags.

Examples:
  # Body text of a PDF, counts on stderr
  wordcut clean paper.pdf --profile body --counts

  # Strip citations and equations from stdin
  cat draft.md | wordcut clean --stdin-name draft.md --exclude-citations --exclude-equations

  # Markdown report with the cleaned text of several files
  wordcut clean --all --format markdown chapter*.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, v, args, modeClean)
		},
	}
	addCleanFlags(cmd)
	cmd.Flags().Bool("counts", false, "write word counts to stderr after the text")
	return cmd
}

func newCountCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Print word counts before and after cleaning",
		Long: `Count prints, per input, the original word count, the filtered word
count, the number of words removed and the source. Several inputs are
followed by a total line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, v, args, modeCount)
		},
	}
	addCleanFlags(cmd)
	return cmd
}

// addCleanFlags registers the flags shared by clean and count.
func addCleanFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	for _, name := range cleaner.OptionNames() {
		flags.Bool(optionFlag(name), false, "exclude "+optionLabel(name))
	}
	flags.Bool("all", false, "enable every exclusion")
	flags.StringP("profile", "p", "", "named option profile (see 'wordcut options')")
	flags.String("profiles-file", "", "profiles file (default: the config file)")
	flags.StringP("format", "f", "text", "output format: text, json, markdown")
	flags.IntP("concurrency", "c", 4, "files cleaned in parallel")
	flags.String("stdin-name", "stdin.txt", "file name used to pick the parser for stdin")
	flags.Bool("no-pdftotext", false, "do not fall back to pdftotext for PDFs without a text layer")
}

// bindCleanFlags binds the running command's flags. Binding happens at run
// time because clean and count share keys on one viper instance.
func bindCleanFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	_ = v.BindPFlag("profile", flags.Lookup("profile"))
	_ = v.BindPFlag("profiles_file", flags.Lookup("profiles-file"))
	_ = v.BindPFlag("format", flags.Lookup("format"))
	_ = v.BindPFlag("concurrency", flags.Lookup("concurrency"))
	_ = v.BindPFlag("no_pdftotext", flags.Lookup("no-pdftotext"))
	if f := flags.Lookup("counts"); f != nil {
		_ = v.BindPFlag("counts", f)
	}
}

func runClean(cmd *cobra.Command, v *viper.Viper, args []string, mode runMode) error {
	bindCleanFlags(cmd, v)
	log := newLogger(cmd, v)

	format := strings.ToLower(v.GetString("format"))
	if format != "text" && format != "json" && format != "markdown" {
		return fmt.Errorf("unknown format %q (want text, json or markdown)", format)
	}

	profiles, err := loadProfiles(v)
	if err != nil {
		return err
	}
	opts, profileName, err := resolveOptions(cmd, v, profiles)
	if err != nil {
		return err
	}
	log.Debug("options resolved", "profile", profileName, "enabled", opts.Enabled())

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inputs, err := readInputs(cmd, v, args)
	if err != nil {
		return err
	}

	popts := parser.Options{PDFFallbackPdftotext: !v.GetBool("no_pdftotext")}
	entries, err := cleanInputs(ctx, inputs, opts, popts, v.GetInt("concurrency"), log)
	if err != nil {
		return err
	}

	r := &report.Report{Profile: profileName, Options: opts.Enabled(), Entries: entries}
	if err := writeReport(cmd, r, format, mode, v); err != nil {
		return err
	}

	if failed := r.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(entries))
	}
	return nil
}

// resolveOptions applies the profile, config-file options, --all and the
// changed --exclude-* flags, in that order.
func resolveOptions(cmd *cobra.Command, v *viper.Viper, profiles config.Profiles) (cleaner.Options, string, error) {
	var opts cleaner.Options

	profileName := v.GetString("profile")
	if profileName != "" {
		p, err := profiles.Get(profileName)
		if err != nil {
			return opts, "", err
		}
		opts = p.Options
	}

	for _, name := range cleaner.OptionNames() {
		key := "options." + strings.ToLower(name)
		if v.IsSet(key) {
			opts.Set(name, v.GetBool(key))
		}
	}

	flags := cmd.Flags()
	if all, _ := flags.GetBool("all"); all {
		opts = cleaner.AllOptions()
	}

	for _, name := range cleaner.OptionNames() {
		f := flags.Lookup(optionFlag(name))
		if f == nil || !f.Changed {
			continue
		}
		on, _ := flags.GetBool(f.Name)
		opts.Set(name, on)
	}

	return opts, profileName, nil
}

// input is one file or stdin, read up front.
type input struct {
	source   string
	filename string
	data     []byte
}

func readInputs(cmd *cobra.Command, v *viper.Viper, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		name, _ := cmd.Flags().GetString("stdin-name")
		return []input{{source: stdinSource, filename: name, data: data}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		if !parser.IsSupportedExtension(path) {
			return nil, fmt.Errorf("%s: unsupported file type (supported: %s)", path, strings.Join(parser.Extensions(), ", "))
		}
		data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, input{source: path, filename: path, data: data})
	}
	return inputs, nil
}

// cleanInputs cleans the inputs concurrently. Entries keep input order; a
// failed input is recorded on its entry and does not stop the others.
func cleanInputs(ctx context.Context, inputs []input, opts cleaner.Options, popts parser.Options, concurrency int, log *slog.Logger) ([]report.Entry, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	entries := make([]report.Entry, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			start := time.Now()
			res, err := pipeline.CleanFile(ctx, in.data, in.filename, opts, popts)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("clean failed", "source", in.source, "error", err)
				entries[i] = report.Entry{Source: in.source, Error: err.Error()}
				return nil
			}
			log.Debug("cleaned",
				"source", in.source,
				"original_words", res.OriginalWords,
				"filtered_words", res.FilteredWords,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			entries[i] = report.Entry{
				Source: in.source,
				Title:  res.Title,
				Pages:  res.Pages,
				Result: res.Result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeReport(cmd *cobra.Command, r *report.Report, format string, mode runMode, v *viper.Viper) error {
	out := cmd.OutOrStdout()

	var w report.Writer
	switch format {
	case "json":
		if mode == modeCount {
			for i := range r.Entries {
				r.Entries[i].Text = ""
			}
		}
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case "markdown":
		w = report.NewMarkdownWriter(out, mode == modeClean)
	default:
		switch {
		case mode == modeCount:
			w = report.NewTextWriter(out, report.CountsOnly())
		case v.GetBool("counts"):
			w = report.NewTextWriter(out, report.WithCounts(cmd.ErrOrStderr()))
		default:
			w = report.NewTextWriter(out)
		}
	}
	return w.Write(r)
}

// optionFlag maps an option name to its flag: excludeFigureCaptions
// becomes exclude-figure-captions.
func optionFlag(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// optionLabel turns excludeFigureCaptions into "figure captions".
func optionLabel(name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(optionFlag(name), "exclude-"), "-", " ")
}
