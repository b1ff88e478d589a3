package ucictl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// buildRootCmd constructs the Cobra command tree wired to a daemon client.
func buildRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:           "ucictl",
		Short:         "Control a running ucid daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultAddr := "http://localhost:8080"
	if v := os.Getenv("UCID_ADDR"); v != "" {
		defaultAddr = v
	}
	root.PersistentFlags().StringVar(&addr, "addr", defaultAddr, "Base URL of the ucid daemon (defaults UCID_ADDR)")

	client := func() *Client { return NewClient(addr) }

	statusCmd := &cobra.Command{Use: "status", Short: "Print daemon and engine status", RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client().Status()
		if err != nil {
			return err
		}
		return printJSON(cmd, st)
	}}

	var movetimeMs int
	bestmoveCmd := &cobra.Command{Use: "bestmove <fen>", Short: "Time-bounded best-move search", Args: cobra.ExactArgs(1), Example: "  ucictl bestmove \"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1\" --movetime-ms 1000", RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client().BestMove(args[0], movetimeMs)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}}
	bestmoveCmd.Flags().IntVar(&movetimeMs, "movetime-ms", 1000, "Search budget in milliseconds")

	var depth int
	evaluateCmd := &cobra.Command{Use: "evaluate <fen>", Short: "Depth-bounded position evaluation", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		res, err := client().Evaluate(args[0], depth)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	}}
	evaluateCmd.Flags().IntVar(&depth, "depth", 12, "Target search depth")

	var skillLevel int
	skillCmd := &cobra.Command{Use: "skill", Short: "Set the engine Skill Level (0..20)", RunE: func(cmd *cobra.Command, args []string) error {
		return client().SetSkill(skillLevel)
	}}
	skillCmd.Flags().IntVar(&skillLevel, "level", 20, "Skill Level, clamped to 0..20")

	var multipvValue int
	multipvCmd := &cobra.Command{Use: "multipv", Short: "Set the number of principal variations", RunE: func(cmd *cobra.Command, args []string) error {
		return client().SetMultiPV(multipvValue)
	}}
	multipvCmd.Flags().IntVar(&multipvValue, "value", 1, "MultiPV value, minimum 1")

	stopCmd := &cobra.Command{Use: "stop", Short: "Interrupt the search in flight", RunE: func(cmd *cobra.Command, args []string) error {
		return client().Stop()
	}}

	eventsCmd := &cobra.Command{Use: "events", Short: "Stream session events as NDJSON until interrupted", RunE: func(cmd *cobra.Command, args []string) error {
		return client().StreamEvents(cmd.OutOrStdout())
	}}

	root.AddCommand(statusCmd, bestmoveCmd, evaluateCmd, skillCmd, multipvCmd, stopCmd, eventsCmd)
	return root
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Main returns an exit code for use by cmd/ucictl.
func Main() int {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
