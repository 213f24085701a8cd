// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for the cortex CLI.
//
// Command: config [show|path]
// Short:   Show configuration or its file path
//
// Examples:
//   cortex config            Show current configuration (same as "show")
//   cortex config show       Show current configuration as TOML
//   cortex config path       Print the config file path
package cli

import (
	"fmt"

	"github.com/jeranaias/cortex-tui/internal/config"
)

// HandleConfigCommand handles the "config" command.
func HandleConfigCommand(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "path":
		path, err := config.Path()
		if err != nil {
			return fmt.Errorf("could not resolve config path: %w", err)
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %s (try show, path)", args.Subcommand)
	}
}

func configShow() error {
	cfg := config.Global()

	encoded, err := cfg.EncodeTOML()
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}

	if path, err := config.Path(); err == nil {
		fmt.Println(infoStyle.Render("# " + path))
	}
	fmt.Print(encoded)
	return nil
}
