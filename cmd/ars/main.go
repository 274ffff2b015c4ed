// Command ars trains linear policies with Augmented Random Search,
// evaluates saved policies and plots reward histories.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger = log.New(os.Stderr, "ars: ", log.LstdFlags)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ars",
		Short:        "Train linear policies with Augmented Random Search",
		SilenceUsage: true,
	}

	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(newTrainCmd(), newEvalCmd(), newPlotCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
