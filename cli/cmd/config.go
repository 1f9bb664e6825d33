package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/crmarques/apirecord/config"
	"github.com/crmarques/apirecord/faults"

	"go.yaml.in/yaml/v3"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		GroupID: groupUserFacing,
		Short:   "Inspect and bootstrap the configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration with credentials masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			maskCredentials(&cfg)
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path the CLI resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(stringFlag(cmd.Flags(), "config"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(stringFlag(cmd.Flags(), "config"))
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return faults.NewTypedError(faults.ConfigError,
					fmt.Sprintf("configuration file %q already exists, pass --force to overwrite", path), nil)
			}

			cfg, err := promptServerConfig(cmd)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func promptServerConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		baseURL  string
		authMode string
	)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Server base URL").
			Prompt("> ").
			Value(&baseURL).
			Validate(func(input string) error {
				if strings.TrimSpace(input) == "" {
					return errors.New("input required")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Authentication").
			Options(
				huh.NewOption("None", "none"),
				huh.NewOption("Basic auth", "basic"),
				huh.NewOption("Bearer token", "bearer"),
				huh.NewOption("Custom header token", "header"),
			).
			Value(&authMode),
	)).WithShowHelp(false).WithInput(cmd.InOrStdin()).WithOutput(cmd.OutOrStdout())

	if err := form.Run(); err != nil {
		return config.Config{}, err
	}

	cfg := config.Config{
		Server: config.HTTPServer{BaseURL: strings.TrimSpace(baseURL)},
	}

	auth, err := promptAuthConfig(cmd, authMode)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Server.Auth = auth

	return cfg, nil
}

func promptAuthConfig(cmd *cobra.Command, mode string) (*config.HTTPAuth, error) {
	required := func(input string) error {
		if strings.TrimSpace(input) == "" {
			return errors.New("input required")
		}
		return nil
	}
	run := func(fields ...huh.Field) error {
		form := huh.NewForm(huh.NewGroup(fields...)).
			WithShowHelp(false).
			WithInput(cmd.InOrStdin()).
			WithOutput(cmd.OutOrStdout())
		return form.Run()
	}

	switch mode {
	case "", "none":
		return nil, nil
	case "basic":
		var username, password string
		err := run(
			huh.NewInput().Title("Username").Prompt("> ").Value(&username).Validate(required),
			huh.NewInput().Title("Password").Prompt("> ").Value(&password).
				EchoMode(huh.EchoModePassword).Validate(required),
		)
		if err != nil {
			return nil, err
		}
		return &config.HTTPAuth{BasicAuth: &config.BasicAuth{
			Username: strings.TrimSpace(username),
			Password: strings.TrimSpace(password),
		}}, nil
	case "bearer":
		var token string
		err := run(
			huh.NewInput().Title("Bearer token").Prompt("> ").Value(&token).
				EchoMode(huh.EchoModePassword).Validate(required),
		)
		if err != nil {
			return nil, err
		}
		return &config.HTTPAuth{BearerToken: &config.BearerTokenAuth{
			Token: strings.TrimSpace(token),
		}}, nil
	case "header":
		var header, token string
		err := run(
			huh.NewInput().Title("Header name").Prompt("> ").Value(&header).Validate(required),
			huh.NewInput().Title("Header token").Prompt("> ").Value(&token).
				EchoMode(huh.EchoModePassword).Validate(required),
		)
		if err != nil {
			return nil, err
		}
		return &config.HTTPAuth{CustomHeader: &config.HeaderTokenAuth{
			Header: strings.TrimSpace(header),
			Token:  strings.TrimSpace(token),
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported authentication mode %q", mode)
	}
}

func maskCredentials(cfg *config.Config) {
	const masked = "********"
	if cfg.Server.Auth == nil {
		return
	}
	if basic := cfg.Server.Auth.BasicAuth; basic != nil {
		basic.Password = masked
	}
	if bearer := cfg.Server.Auth.BearerToken; bearer != nil {
		bearer.Token = masked
	}
	if header := cfg.Server.Auth.CustomHeader; header != nil {
		header.Token = masked
	}
}
