package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var (
		file string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "seed [seeder...]",
		Short: "Populate the database with seed data",
		Long:  "Run the named seeders, or all seeders when none are named, in a single transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				fmt.Fprintln(out, "Available seeders:")
				for _, s := range listSeeders() {
					fmt.Fprintf(out, "  - %s: %s\n", s.Name(), s.Description())
				}
				return nil
			}

			if file != "" {
				if s, ok := getSeeder("patients"); ok {
					s.(*PatientSeeder).SetFile(file)
				}
			}

			names := args
			if len(names) == 0 {
				for _, s := range listSeeders() {
					names = append(names, s.Name())
				}
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			counts, err := runSeeders(cmd.Context(), e.db, names)
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintf(out, "%s: %d record(s) seeded\n", name, counts[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "External patient seed file (overrides embedded)")
	cmd.Flags().BoolVar(&list, "list", false, "List available seeders")

	return cmd
}
