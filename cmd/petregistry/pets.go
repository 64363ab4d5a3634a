package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pet-registry/internal/domain/errs"
)

func newPetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Query pets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active pets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := reg.ListPets(cmd.Context(), "")
			if err != nil {
				return err
			}
			return printPets(cmd.OutOrStdout(), opts.json, items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <filter>",
		Short: "Search active pets by name or species (case-insensitive substring)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := reg.ListPets(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPets(cmd.OutOrStdout(), opts.json, items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get a pet by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("pet id", args[0])
			if err != nil {
				return err
			}

			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			p, err := reg.GetPet(cmd.Context(), id)
			if err != nil {
				return err
			}
			if p == nil {
				return errs.NotFound("pet %d not found", id)
			}
			return printPet(cmd.OutOrStdout(), opts.json, *p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tag <tag-code>",
		Short: "Find the active pet with this exact tag code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			p, err := reg.FindPetByTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return errs.NotFound("no pet with tag %q", args[0])
			}
			return printPet(cmd.OutOrStdout(), opts.json, *p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-chip <pet-id> <microchip-id>",
		Short: "Detach the pet's microchip, then soft-delete it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			petID, err := parseID("pet id", args[0])
			if err != nil {
				return err
			}
			chipID, err := parseID("microchip id", args[1])
			if err != nil {
				return err
			}

			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := reg.SafelyRemoveMicrochip(cmd.Context(), petID, chipID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "microchip %d removed from pet %d\n", chipID, petID)
			return err
		},
	})

	return cmd
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.Validation("%s must be an integer, got %q", name, s)
	}
	return id, nil
}
