package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/sharelink/cmd/app/commands"
	"github.com/allisson/sharelink/internal/app"
	"github.com/allisson/sharelink/internal/config"
)

func getLinkCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-links",
			Usage: "Issue share links for a template's recipients",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "template",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Template name",
				},
				&cli.StringFlag{
					Name:    "recipient",
					Aliases: []string{"r"},
					Value:   "",
					Usage:   "Recipient ID (UUID); omit to issue for every recipient",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				issuer, err := container.IssuerUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueLinks(
					ctx,
					issuer,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("template"),
					cmd.String("recipient"),
					cmd.String("format"),
				)
			},
		},
	}
}
