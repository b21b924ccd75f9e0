package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"finsight/pkg/core/store"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage analyst notes on stored runs (requires DATABASE_URL)",
	}
	cmd.AddCommand(newNotesAddCmd(), newNotesListCmd())
	return cmd
}

func newNotesAddCmd() *cobra.Command {
	var (
		runID  string
		client string
		author string
	)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Attach a note to a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(runID)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", runID, err)
			}
			if err := store.InitDB(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			repo := store.NewPostgresNotesRepo(store.GetPool())
			note := &store.Note{RunID: id, Client: client, Author: author, Body: args[0]}
			if err := repo.Add(cmd.Context(), note); err != nil {
				return err
			}
			fmt.Println(note.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "run id the note belongs to")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&author, "author", "", "note author")
	cmd.MarkFlagRequired("run")
	return cmd
}

func newNotesListCmd() *cobra.Command {
	var client string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDB(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()

			repo := store.NewPostgresNotesRepo(store.GetPool())
			notes, err := repo.ForClient(cmd.Context(), client)
			if err != nil {
				return err
			}
			for _, n := range notes {
				fmt.Printf("%s  %s  %s\n", n.CreatedAt.Format("2006-01-02"), n.RunID, n.Body)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.MarkFlagRequired("client")
	return cmd
}
