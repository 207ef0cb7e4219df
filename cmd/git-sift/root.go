package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cpa750/git-sift/internal/config"
	"github.com/cpa750/git-sift/internal/git"
	"github.com/cpa750/git-sift/internal/log"
	"github.com/cpa750/git-sift/internal/output"
	"github.com/cpa750/git-sift/internal/ui/picker"
	"github.com/cpa750/git-sift/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Root command flags
	backendFlag     string
	localOnly       bool
	copyToClipboard bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "git-sift [query]",
	Short: "Fuzzy-find a git branch and check it out",
	Long: `git-sift lists local and remote branches in an interactive fuzzy finder
and checks out the one you pick.

Picking a remote branch (origin/feature) creates a local tracking branch
when none exists, switches to the local branch when it points at the same
commit, and otherwise checks out the remote commit as a detached HEAD
without touching the local branch.`,
	Example: `  git-sift              # Pick from all branches
  git-sift feat         # Start with "feat" typed
  git-sift --local      # Only local branches
  git-sift --backend go-git
  git-sift --copy       # Also copy the branch name to the clipboard`,
	Args:                       cobra.MaximumNArgs(1),
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logger is created here so it sees the parsed flags.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	RunE: runPicker,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for the checkout report)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'git-sift -h' for help")
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", `Backend to use: "git" or "go-git" (default from config)`)
	rootCmd.PersistentFlags().BoolVarP(&localOnly, "local", "l", false, "Only list local branches")
	rootCmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the checked out branch name to the clipboard")
	rootCmd.RegisterFlagCompletionFunc("backend", cobra.FixedCompletions(config.ValidBackends, cobra.ShellCompDirectiveNoFileComp))

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCompletionCmd())
}

func runPicker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	styles.Init(cfg.Theme)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("git-sift needs an interactive terminal")
	}

	backend, err := openBackend(ctx, cfg.Backend)
	if err != nil {
		return err
	}

	repo, err := git.Open(ctx, backend, git.Options{LocalOnly: cfg.LocalOnly})
	if err != nil {
		return err
	}
	l.Debug("starting picker", "backend", cfg.Backend, "candidates", len(repo.Candidates()))

	var needle string
	if len(args) == 1 {
		needle = args[0]
	}

	result, err := picker.Run(ctx, picker.RunParams{
		Candidates: repo.Candidates(),
		Needle:     needle,
		Keys:       cfg.Keys,
		Checkouter: repo,
	})
	if err != nil {
		return err
	}

	picker.Report(output.FromContext(ctx), result)

	if copyToClipboard && result.State == picker.Submitted && result.Err == nil {
		if err := clipboard.WriteAll(result.Outcome.Branch); err != nil {
			l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		}
	}
	return nil
}
