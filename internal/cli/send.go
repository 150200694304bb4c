package cli

import (
	"github.com/spf13/cobra"

	"github.com/smsgate/smsgate/internal/backend"
	"github.com/smsgate/smsgate/internal/sms"
)

// newService wires config → registry → resolver → factory → service for one
// command invocation. Console output from the fallback backend goes to the
// command's stdout.
func newService(cmd *cobra.Command) (*sms.Service, error) {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	registry := backend.NewRegistry(logger, backend.Builtin())
	resolver := backend.NewResolver(registry)
	factory := backend.NewFactory(resolver, cmd.OutOrStdout(), logger)

	provider, err := factory.Backend(cfg, backend.BuiltinNamespace)
	if err != nil {
		return nil, err
	}
	return sms.NewService(provider), nil
}

var sendLine string

var sendCmd = &cobra.Command{
	Use:   "send <phone> <message>",
	Short: "Send a single SMS message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		return svc.SendOneMessage(cmd.Context(), args[0], args[1], sendLine)
	},
}

var bulkLine string

var bulkCmd = &cobra.Command{
	Use:   "bulk <message> <phone>...",
	Short: "Send one message to multiple recipients",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		return svc.SendBulkMessages(cmd.Context(), args[1:], args[0], bulkLine)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <phone> <code>",
	Short: "Send a verification code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		return svc.SendVerifyMessage(cmd.Context(), args[0], args[1])
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendLine, "line", "", "Sender line number (defaults to the configured line)")
	bulkCmd.Flags().StringVar(&bulkLine, "line", "", "Sender line number (defaults to the configured line)")
}
