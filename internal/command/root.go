package command

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/banterhq/banter/internal/chat"
)

const AppName = "banter"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	var opts struct {
		name        string
		noResponses bool
		peers       int
	}

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Banter - a simulated chat room in your terminal",
		Long:          "Banter is a terminal chat room with simulated participants.\nLog in with a name, send messages, and the room answers back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return chat.Run(chat.Options{
				Name:      opts.name,
				Responses: !opts.noResponses,
				Peers:     opts.peers,
			})
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().StringVar(&opts.name, "name", "", "pre-fill the login prompt")
	cmd.Flags().BoolVar(&opts.noResponses, "no-responses", false, "disable the simulated responder")
	cmd.Flags().IntVar(&opts.peers, "peers", 0, "limit the number of seeded peers")

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
