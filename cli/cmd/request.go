package cmd

import (
	"github.com/spf13/cobra"

	httpgateway "github.com/crmarques/apirecord/internal/providers/transport/http"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/resource"
)

func newRequestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request",
		GroupID: groupUserFacing,
		Short:   "Send ad-hoc requests against the configured server",
	}

	for _, definition := range []struct {
		action metadata.Action
		short  string
	}{
		{metadata.ActionGet, "Fetch a path on the configured server"},
		{metadata.ActionPost, "Post a payload to a path on the configured server"},
		{metadata.ActionPut, "Put a payload to a path on the configured server"},
		{metadata.ActionPatch, "Patch a path on the configured server"},
		{metadata.ActionDelete, "Delete a path on the configured server"},
	} {
		cmd.AddCommand(newRequestMethodCommand(definition.action, definition.short))
	}

	return cmd
}

func newRequestMethodCommand(action metadata.Action, short string) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   string(action) + " <path>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gateway, err := httpgateway.NewGateway(cfg.Server)
			if err != nil {
				return err
			}

			parsed, err := parsePayload(payload)
			if err != nil {
				return err
			}
			var body resource.Value
			if parsed != nil {
				body = parsed
			}

			response, err := gateway.Invoke(cmd.Context(), action, args[0], body)
			if err != nil {
				return err
			}
			return printValue(cmd, response)
		},
	}

	if action != metadata.ActionGet && action != metadata.ActionDelete {
		cmd.Flags().StringVar(&payload, "payload", "", "Request payload as an inline document or @file path")
	}

	return cmd
}
