package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/paylink/terminal/cmd/app/commands"
	authService "github.com/paylink/terminal/internal/auth/service"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-password",
			Usage: "Hash a terminal password for TERMINAL_PASSWORD_HASH (reads stdin when --password is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password to hash",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				hasher, err := authService.NewPasswordHasher()
				if err != nil {
					return err
				}
				return commands.RunHashPassword(hasher, commands.DefaultIO(), cmd.String("password"))
			},
		},
	}
}
