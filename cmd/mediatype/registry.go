package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"stampworks/mediatype/pkg/cli"
	"stampworks/mediatype/pkg/mediatype"
)

var registryFlags struct {
	format string
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the media-type registry",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered media types and their parameter policies",
	Long: `List the active registry table: every registered type/subtype pair and
the parameters it permits. This table is the single place that decides
which parameterized media types validate; review it like consensus data,
because it is.

Examples:
  # Show the builtin table
  mediatype registry list

  # Show a registry document
  mediatype registry list --registry registry.yaml

  # JSON output
  mediatype registry list --format json`,
	RunE: runRegistryList,
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryListCmd)

	registryListCmd.Flags().StringVar(&registryFlags.format, "format", "text", "output format: text, json")
}

// registryEntryView is one entry in display form.
type registryEntryView struct {
	MediaType  string              `json:"media_type"`
	Parameters []registryParamView `json:"parameters"`
}

type registryParamView struct {
	Name            string   `json:"name"`
	Match           string   `json:"match"`
	Value           string   `json:"value,omitempty"`
	Values          []string `json:"values,omitempty"`
	CaseInsensitive bool     `json:"case_insensitive"`
}

func runRegistryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewCommandError("registry list", err)
	}
	gate, err := buildGate(cfg)
	if err != nil {
		return cli.NewCommandError("registry list", err)
	}

	views := make([]registryEntryView, 0, gate.Registry().Len())
	for _, entry := range gate.Registry().Entries() {
		view := registryEntryView{MediaType: entry.Key()}
		names := make([]string, 0, len(entry.Params))
		for name := range entry.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := entry.Params[name]
			view.Parameters = append(view.Parameters, registryParamView{
				Name:            name,
				Match:           string(c.Match),
				Value:           c.Value,
				Values:          c.Values,
				CaseInsensitive: c.CaseInsensitive,
			})
		}
		views = append(views, view)
	}

	if registryFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, views)
	}

	for _, view := range views {
		if len(view.Parameters) == 0 {
			fmt.Printf("%-16s (no parameters permitted)\n", view.MediaType)
			continue
		}
		fmt.Printf("%s\n", view.MediaType)
		for _, p := range view.Parameters {
			fmt.Printf("  %-10s %s\n", p.Name, describeConstraint(p))
		}
	}
	return nil
}

func describeConstraint(p registryParamView) string {
	var desc string
	switch mediatype.Match(p.Match) {
	case mediatype.MatchExact:
		desc = fmt.Sprintf("= %s", p.Value)
	case mediatype.MatchEnum:
		desc = fmt.Sprintf("one of {%s}", strings.Join(p.Values, ", "))
	case mediatype.MatchToken:
		desc = "any token"
	default:
		desc = p.Match
	}
	if p.CaseInsensitive {
		desc += " (case-insensitive)"
	}
	return desc
}
