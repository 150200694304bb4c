package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/smsgate/smsgate/internal/backend"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List installed provider backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry := backend.NewRegistry(slog.Default(), backend.Builtin())
		keys, err := registry.Keys(backend.BuiltinNamespace)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}
