// Package cmd provides command-line interface implementations.
// This file contains the format command, the CLI's default action.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"

	"github.com/connerohnesorge/endmark/internal/batch"
	"github.com/connerohnesorge/endmark/internal/clip"
	"github.com/connerohnesorge/endmark/internal/cliui"
	"github.com/connerohnesorge/endmark/internal/config"
	"github.com/connerohnesorge/endmark/internal/reflow"
	"github.com/connerohnesorge/endmark/internal/reflowerrs"
)

// FormatCmd reformats one or more source files, or a clipboard
// fragment, according to the selected end-mark mode.
type FormatCmd struct {
	Files []string `arg:"" optional:"" predictor:"files" help:"Files to format (reads stdin if omitted and not --clipboard)"` //nolint:lll,revive

	InsertEnd    bool `name:"insert-end"    short:"e" help:"Synthesize end-marks from indentation (default)"`               //nolint:lll,revive
	StripEnd     bool `name:"strip-end"     short:"s" help:"Remove end-marks, re-deriving indentation"`                     //nolint:lll,revive
	IgnoreIndent bool `name:"ignore-indent" short:"i" help:"Drive scope from BLOCK_START/BLOCK_END instead of INDENT/DEDENT"` //nolint:lll,revive
	Clipboard    bool `name:"clipboard"     short:"c" help:"Format the clipboard contents in place"`                        //nolint:lll,revive

	Write      bool   `name:"write"        short:"w" help:"Write result back to each file instead of stdout"`   //nolint:lll,revive
	Watch      bool   `name:"watch"                  help:"Reformat files again whenever they change (requires --write)"` //nolint:lll,revive
	IndentWith string `name:"indent-with"  predictor:"indent" help:"Literal string repeated per indent level"`  //nolint:lll,revive
	Spaces     int    `name:"spaces"                 help:"Convenience for --indent-with with N spaces"`        //nolint:lll,revive
	EndIsNone  bool   `name:"end-is-none"  short:"n" help:"Inject \"end = None\" instead of \"from pyend import end\""` //nolint:lll,revive
	NoValidate bool   `name:"no-validate"            help:"Skip re-tokenizing the output to verify equivalence"` //nolint:lll,revive
	Debug      bool   `name:"debug"                  help:"Render indentation and whitespace with visible glyphs"` //nolint:lll,revive
}

// Run executes the format command.
func (c *FormatCmd) Run() error {
	if c.InsertEnd && c.StripEnd {
		return &reflowerrs.ConflictingOptionsError{Flag1: "--insert-end", Flag2: "--strip-end"}
	}
	if c.InsertEnd && c.IgnoreIndent {
		return &reflowerrs.ConflictingOptionsError{Flag1: "--insert-end", Flag2: "--ignore-indent"}
	}
	if c.Watch && !c.Write {
		return &reflowerrs.ConflictingOptionsError{Flag1: "--watch", Flag2: "(missing --write)"}
	}
	if c.Watch && c.Clipboard {
		return &reflowerrs.ConflictingOptionsError{Flag1: "--watch", Flag2: "--clipboard"}
	}

	opts, err := c.options()
	if err != nil {
		return err
	}

	if c.Clipboard {
		return c.runClipboard(opts)
	}

	if len(c.Files) == 0 {
		return c.runStdin(opts)
	}

	if c.Watch {
		return c.runWatch(opts)
	}

	return c.runFiles(opts)
}

func (c *FormatCmd) options() (reflow.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return reflow.Options{}, err
	}

	indentWith := cfg.IndentWith
	if c.Spaces > 0 {
		indentWith = strings.Repeat(" ", c.Spaces)
	}
	if c.IndentWith != "" {
		indentWith = c.IndentWith
	}

	validate := cfg.Validate && !c.NoValidate

	ignoreIndent := cfg.IgnoreIndent || c.IgnoreIndent
	insertEnd := c.InsertEnd || (!c.StripEnd && !ignoreIndent)

	defineEnd := ""
	if c.EndIsNone {
		defineEnd = "end = None"
	}

	return reflow.Options{
		InsertEnd:    insertEnd,
		StripEnd:     c.StripEnd,
		IgnoreIndent: ignoreIndent,
		Clipboard:    c.Clipboard,
		IndentWith:   indentWith,
		Validate:     validate,
		Debug:        c.Debug,
		DefineEnd:    defineEnd,
	}, nil
}

func (c *FormatCmd) runClipboard(opts reflow.Options) error {
	src, err := clip.Read()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}

	out, err := reflow.FormatString(src, opts)
	if err != nil {
		return err
	}

	return clip.Write(out)
}

func (c *FormatCmd) runStdin(opts reflow.Options) error {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("no files given and stdin is a terminal")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	out, err := reflow.FormatString(string(data), opts)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

func (c *FormatCmd) runFiles(opts reflow.Options) error {
	results, err := batch.FormatFiles(c.Files, opts, c.Write)

	for _, res := range results {
		switch {
		case !c.Write:
			fmt.Print(string(res.Output))
		case res.Changed:
			fmt.Println(cliui.ChangedStyle().Render("reformatted " + res.Path))
		default:
			fmt.Println(cliui.OKStyle().Render("unchanged " + res.Path))
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, cliui.ErrorStyle().Render(err.Error()))
		return err
	}
	return nil
}

func (c *FormatCmd) runWatch(opts reflow.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range c.Files {
		if err := watcher.Add(f); err != nil {
			return fmt.Errorf("failed to watch %s: %w", f, err)
		}
	}

	if _, err := batch.FormatFiles(c.Files, opts, true); err != nil {
		fmt.Fprintln(os.Stderr, cliui.ErrorStyle().Render(err.Error()))
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := batch.FormatFiles([]string{event.Name}, opts, true); err != nil {
				fmt.Fprintln(os.Stderr, cliui.ErrorStyle().Render(err.Error()))
				continue
			}
			fmt.Println(cliui.ChangedStyle().Render("reformatted " + event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, cliui.ErrorStyle().Render(err.Error()))
		}
	}
}
