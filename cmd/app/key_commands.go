package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/paylink/terminal/cmd/app/commands"
	"github.com/paylink/terminal/internal/app"
	"github.com/paylink/terminal/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-secret",
			Usage: "Generate a new signing and encryption secret pair",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bytes",
					Aliases: []string{"b"},
					Value:   32,
					Usage:   "Random bytes per secret (minimum 32)",
				},
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Usage:   "Wrap the secrets with this KMS key (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				return commands.RunGenerateSecret(
					ctx,
					container.KMSService(),
					container.Logger(),
					os.Stdout,
					int(cmd.Int("bytes")),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
