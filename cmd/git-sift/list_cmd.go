package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cpa750/git-sift/internal/finder"
	"github.com/cpa750/git-sift/internal/git"
	"github.com/cpa750/git-sift/internal/output"
	"github.com/cpa750/git-sift/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		namesOnly  bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Short:   "List branches without the picker",
		Aliases: []string{"ls"},
		Long: `List the branches the picker would offer.

With a query, only matching branches are shown, best match first.`,
		Example: `  git-sift list           # Table of all branches
  git-sift list feat      # Branches matching "feat"
  git-sift list --names   # One name per line, for scripts
  git-sift list --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			backend, err := openBackend(ctx, cfg.Backend)
			if err != nil {
				return err
			}
			repo, err := git.Open(ctx, backend, git.Options{LocalOnly: cfg.LocalOnly})
			if err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			return printBranches(output.FromContext(ctx), filterBranches(repo.Branches(), query), jsonOutput, namesOnly)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&namesOnly, "names", false, "Print branch names only")
	cmd.MarkFlagsMutuallyExclusive("json", "names")

	return cmd
}

// filterBranches keeps the branches matching query, best match first.
// An empty query keeps every branch in its original order.
func filterBranches(branches []git.Branch, query string) []git.Branch {
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	matches := finder.Find(query, names)
	out := make([]git.Branch, 0, len(matches))
	for _, m := range matches {
		out = append(out, branches[m.Index])
	}
	return out
}

type branchJSON struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func printBranches(p *output.Printer, branches []git.Branch, jsonOutput, namesOnly bool) error {
	switch {
	case jsonOutput:
		items := make([]branchJSON, 0, len(branches))
		for _, b := range branches {
			items = append(items, branchJSON{Name: b.Name, Kind: b.Kind.String()})
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		p.Println(string(data))
	case namesOnly:
		for _, b := range branches {
			p.Println(b.Name)
		}
	default:
		p.Print(static.BranchTable(branches))
	}
	return nil
}
