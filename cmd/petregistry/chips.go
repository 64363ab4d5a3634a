package main

import (
	"github.com/spf13/cobra"

	"pet-registry/internal/domain/errs"
)

func newChipsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chips",
		Short: "Query microchips",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active microchips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := reg.ListMicrochips(cmd.Context())
			if err != nil {
				return err
			}
			return printChips(cmd.OutOrStdout(), opts.json, items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get a microchip by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("microchip id", args[0])
			if err != nil {
				return err
			}

			reg, closeFn, err := openRegistry(cmd, opts)
			if err != nil {
				return err
			}
			defer closeFn()

			m, err := reg.GetMicrochip(cmd.Context(), id)
			if err != nil {
				return err
			}
			if m == nil {
				return errs.NotFound("microchip %d not found", id)
			}
			return printChip(cmd.OutOrStdout(), opts.json, *m)
		},
	})

	return cmd
}
