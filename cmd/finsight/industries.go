package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/pkg/core/benchmark"
)

func newIndustriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List industries with benchmark coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := benchmark.Load()
			if err != nil {
				return err
			}
			for _, name := range ds.Industries() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
