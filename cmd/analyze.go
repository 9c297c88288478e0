package cmd

import "github.com/spf13/cobra"

var cycleCmd = &cobra.Command{
	Use:   "cycle <graph.toml>",
	Short: "Report whether inserting the graph's edges in order closes a cycle",
	Args:  cobra.ExactArgs(1),
	RunE:  runOnFile((*evaluator).cycle),
}

var pairsCmd = &cobra.Command{
	Use:   "pairs <graph.toml>",
	Short: "Count vertex pairs that lie in different connected components",
	Args:  cobra.ExactArgs(1),
	RunE:  runOnFile((*evaluator).pairs),
}

var componentsCmd = &cobra.Command{
	Use:   "components <graph.toml>",
	Short: "List connected component sizes",
	Args:  cobra.ExactArgs(1),
	RunE:  runOnFile((*evaluator).components),
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(pairsCmd)
	rootCmd.AddCommand(componentsCmd)
}
