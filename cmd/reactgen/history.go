package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/decagondev/react-component-generator/internal/config"
	"github.com/decagondev/react-component-generator/internal/history"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List past generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No generations yet. Run: reactgen generate")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCOMPONENT\tSTATUS\tBYTES\tCREATED")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				shortID(rec.ID), rec.Component.Name, rec.Status, rec.Bytes,
				rec.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := resolveRecord(store, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", rec.ID)
		fmt.Printf("Component: %s\n", rec.Component.Name)
		fmt.Printf("Purpose:   %s\n", rec.Component.Purpose)
		fmt.Printf("Props:     %s\n", rec.Component.Props)
		fmt.Printf("Behavior:  %s\n", rec.Component.Behavior)
		fmt.Printf("Styling:   %s\n", rec.Component.Styling)
		fmt.Printf("Examples:  %s\n", rec.Component.Examples)
		fmt.Printf("Provider:  %s (%s)\n", rec.Provider, rec.Model)
		fmt.Printf("Status:    %s\n", rec.Status)
		if rec.Error != "" {
			fmt.Printf("Error:     %s\n", rec.Error)
		}
		if rec.OutputPath != "" {
			fmt.Printf("Output:    %s (%d bytes)\n", rec.OutputPath, rec.Bytes)
		}
		fmt.Printf("Created:   %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

func openStore() (*history.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.DatabasePath)
}

// resolveRecord accepts a full ID or an unambiguous prefix.
func resolveRecord(store *history.Store, id string) (*history.Record, error) {
	if rec, err := store.Get(id); err == nil {
		return rec, nil
	}

	records, err := store.List()
	if err != nil {
		return nil, err
	}
	var match *history.Record
	for _, rec := range records {
		if len(id) >= 4 && len(rec.ID) >= len(id) && rec.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("ambiguous ID prefix %q", id)
			}
			match = rec
		}
	}
	if match == nil {
		return nil, fmt.Errorf("generation %q not found", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
