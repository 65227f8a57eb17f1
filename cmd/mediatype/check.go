package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"stampworks/mediatype/pkg/cli"
	"stampworks/mediatype/pkg/mediatype"
)

var checkFlags struct {
	file   string
	watch  bool
	format string
}

var checkCmd = &cobra.Command{
	Use:   "check [media-types...]",
	Short: "Validate media-type strings",
	Long: `Validate media-type strings and print their canonical forms.

Inputs come from arguments, from a manifest file with one media type per
line (--file), or from stdin when neither is given. Lines starting with #
are skipped. With --watch, the manifest is re-checked whenever it changes.

The command exits non-zero when any input is rejected, so it can gate CI
pipelines that produce issuance requests.

Examples:
  # Validate arguments
  mediatype check "audio/ogg;codecs=opus" image/jpeg

  # Validate a manifest
  mediatype check --file media.txt

  # JSON output
  mediatype check --file media.txt --format json

  # Keep re-checking the manifest on change
  mediatype check --file media.txt --watch`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.file, "file", "f", "", "manifest file, one media type per line")
	checkCmd.Flags().BoolVarP(&checkFlags.watch, "watch", "w", false, "re-check the manifest when it changes (requires --file)")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
}

// checkResult is one input's verdict in output form.
type checkResult struct {
	Input     string `json:"input"`
	Accepted  bool   `json:"accepted"`
	Declared  bool   `json:"declared"`
	Canonical string `json:"canonical,omitempty"`
	Kind      string `json:"reject_kind,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	gate, err := buildGate(cfg)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	if checkFlags.watch {
		if checkFlags.file == "" {
			return fmt.Errorf("--watch requires --file")
		}
		logger, err := buildLogger(cfg)
		if err != nil {
			return cli.NewCommandError("check", err)
		}
		return watchManifest(gate, checkFlags.file, logger)
	}

	inputs, err := collectInputs(args)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	rejected, err := checkAll(gate, inputs, os.Stdout)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d media types rejected", rejected, len(inputs))
	}
	return nil
}

func collectInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if checkFlags.file != "" {
		f, err := os.Open(checkFlags.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readManifest(f)
	}
	return readManifest(os.Stdin)
}

// readManifest reads one media type per line, skipping blanks and
// #-comments. An empty line is a comment, not the "no media type declared"
// sentinel; the empty string can still be checked explicitly as "".
func readManifest(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	return inputs, scanner.Err()
}

// checkAll validates each input and writes results, returning the number
// rejected.
func checkAll(gate *mediatype.Gate, inputs []string, w io.Writer) (int, error) {
	formatter := cli.NewFormatter(cli.OutputFormat(checkFlags.format))
	rejected := 0

	for _, raw := range inputs {
		v := gate.Validate(raw)
		res := checkResult{
			Input:     raw,
			Accepted:  v.Accepted,
			Declared:  v.Declared,
			Canonical: v.Canonical,
		}
		if !v.Accepted {
			rejected++
			res.Kind = string(v.Reason.Kind)
			res.Reason = v.Reason.Message
			if v.Reason.Token != "" {
				res.Reason += ": " + v.Reason.Token
			}
		}

		if checkFlags.format == "json" {
			if err := formatter.FormatTo(w, res); err != nil {
				return rejected, err
			}
			continue
		}
		if v.Accepted {
			fmt.Fprintf(w, "ACCEPT  %-40s -> %s\n", raw, v.Canonical)
		} else {
			fmt.Fprintf(w, "REJECT  %-40s %s (%s)\n", raw, res.Reason, res.Kind)
		}
	}
	return rejected, nil
}

// watchManifest re-checks the manifest on every change until interrupted.
// Events are debounced: editors produce bursts of writes for one save.
func watchManifest(gate *mediatype.Gate, path string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}

	recheck := func() {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("failed to open manifest", "path", path, "error", err)
			return
		}
		inputs, err := readManifest(f)
		f.Close()
		if err != nil {
			logger.Error("failed to read manifest", "path", path, "error", err)
			return
		}
		rejected, err := checkAll(gate, inputs, os.Stdout)
		if err != nil {
			logger.Error("failed to write results", "error", err)
			return
		}
		logger.Info("manifest checked", "path", path, "total", len(inputs), "rejected", rejected)
	}
	recheck()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	const debounce = 200 * time.Millisecond
	var timer *time.Timer
	timerCh := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case timerCh <- struct{}{}:
				default:
				}
			})
		case <-timerCh:
			recheck()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		case <-sigCh:
			logger.Info("stopping watch")
			return nil
		}
	}
}
