package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/paylink/terminal/cmd/app/commands"
	"github.com/paylink/terminal/internal/app"
	"github.com/paylink/terminal/internal/config"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "text",
	Usage:   "Output format: 'text' or 'json'",
}

// linkContainer loads the configuration and checks the settings link commands need.
func linkContainer() (*app.Container, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return app.NewContainer(cfg), nil
}

func getLinkCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-link",
			Usage: "Issue a signed payment link",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "amount",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Amount to charge, e.g. 10000",
				},
				&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Payment title"},
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Customer name"},
				&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Customer email"},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := linkContainer()
				if err != nil {
					return err
				}

				issuer, err := container.LinkIssuer()
				if err != nil {
					return err
				}

				return commands.RunIssueLink(
					ctx,
					issuer,
					os.Stdout,
					cmd.String("amount"),
					linksecDomain.PIIRecord{
						Name:  cmd.String("name"),
						Email: cmd.String("email"),
						Title: cmd.String("title"),
					},
					container.Config().PayLinkLifetime,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-link",
			Usage: "Verify a /pay, /success or /webhook link and print its content",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "url",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Full link URL",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := linkContainer()
				if err != nil {
					return err
				}

				verifier, err := container.LinkVerifier()
				if err != nil {
					return err
				}

				return commands.RunVerifyLink(ctx, verifier, os.Stdout, cmd.String("url"), cmd.String("format"))
			},
		},
	}
}
