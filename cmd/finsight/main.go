package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	root := &cobra.Command{
		Use:   "finsight",
		Short: "Financial statement analysis for small and medium businesses",
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newIndustriesCmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newNotesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
