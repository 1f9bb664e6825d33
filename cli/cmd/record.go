package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmarques/apirecord/record"
)

func newRecordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		GroupID: groupUserFacing,
		Short:   "Fetch, create, update, and delete records of a configured type",
	}

	cmd.AddCommand(newRecordGetCommand())
	cmd.AddCommand(newRecordCreateCommand())
	cmd.AddCommand(newRecordUpdateCommand())
	cmd.AddCommand(newRecordDeleteCommand())
	cmd.AddCommand(newRecordDestroyCommand())

	return cmd
}

func newRecordGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <id>",
		Short: "Fetch one record and print its attributes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			typ, err := recordTypeFor(cfg, args[0])
			if err != nil {
				return err
			}
			rec, err := persistedRecord(typ, args[1])
			if err != nil {
				return err
			}
			if err := engine.Refresh(cmd.Context(), rec); err != nil {
				return err
			}
			return printValue(cmd, rec.Attributes())
		},
	}
}

func newRecordCreateCommand() *cobra.Command {
	var (
		payload string
		sets    []string
	)

	cmd := &cobra.Command{
		Use:   "create <type>",
		Short: "Create a record from a payload and print the persisted attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			typ, err := recordTypeFor(cfg, args[0])
			if err != nil {
				return err
			}
			attrs, err := parsePayload(payload)
			if err != nil {
				return err
			}
			attrs, err = applySetFlags(attrs, sets)
			if err != nil {
				return err
			}

			rec := record.New(typ)
			created, err := engine.Create(cmd.Context(), rec, attrs)
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("record already exists and was not created")
			}
			return printValue(cmd, rec.Attributes())
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Record attributes as an inline document or @file path")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set one attribute as field=value (repeatable)")

	return cmd
}

func newRecordUpdateCommand() *cobra.Command {
	var (
		payload string
		sets    []string
	)

	cmd := &cobra.Command{
		Use:   "update <type> <id>",
		Short: "Merge a payload into an existing record and persist the changed fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			typ, err := recordTypeFor(cfg, args[0])
			if err != nil {
				return err
			}
			attrs, err := parsePayload(payload)
			if err != nil {
				return err
			}
			attrs, err = applySetFlags(attrs, sets)
			if err != nil {
				return err
			}

			rec, err := persistedRecord(typ, args[1])
			if err != nil {
				return err
			}
			updated, err := engine.Update(cmd.Context(), rec, attrs)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("record %q has no identity and was not updated", args[1])
			}
			return printValue(cmd, rec.Attributes())
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", "Changed attributes as an inline document or @file path")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set one attribute as field=value (repeatable)")

	return cmd
}

func newRecordDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type> <id>",
		Short: "Delete one record by identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			typ, err := recordTypeFor(cfg, args[0])
			if err != nil {
				return err
			}
			rec, err := persistedRecord(typ, args[1])
			if err != nil {
				return err
			}
			deleted, err := engine.Delete(cmd.Context(), rec)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to delete")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", args[0], args[1])
			return nil
		},
	}
}

func newRecordDestroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <type> <id>...",
		Short: "Delete several records by identity, skipping the ones that fail",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			typ, err := recordTypeFor(cfg, args[0])
			if err != nil {
				return err
			}

			find := func(_ context.Context, id any) (*record.Record, error) {
				return persistedRecord(typ, fmt.Sprintf("%v", id))
			}

			ids := make([]any, 0, len(args)-1)
			for _, id := range args[1:] {
				ids = append(ids, id)
			}

			destroyed := engine.DestroyMany(cmd.Context(), find, ids...)
			fmt.Fprintf(cmd.OutOrStdout(), "destroyed %d of %d %s records\n", destroyed, len(ids), args[0])
			return nil
		},
	}
}
