package cmd

import (
	"fmt"

	"event-media-backend/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func provisionCommand() *cli.Command {
	return &cli.Command{
		Name:  "provision",
		Usage: "one-off setup tasks; each is safe to run again",
		Subcommands: []*cli.Command{
			{
				Name:  "admin",
				Usage: "create the admin account if it does not exist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Admin", EnvVars: []string{"ADMIN_NAME"}},
					&cli.StringFlag{Name: "email", Required: true, EnvVars: []string{"ADMIN_EMAIL"}},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: provisionAdmin,
			},
			{
				Name:      "verify-user",
				Usage:     "mark the user with the given username as verified",
				ArgsUsage: "<username>",
				Action:    verifyUser,
			},
		},
	}
}

func provisionAdmin(c *cli.Context) error {
	e, closeStore, err := setup(c)
	if err != nil {
		return err
	}
	defer closeStore()

	admins := services.NewAdminService(e.store, e.hasher)
	admin, created, err := admins.EnsureAdmin(c.Context, c.String("name"), c.String("email"), c.String("password"))
	if err != nil {
		return err
	}

	if created {
		log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("Admin created")
	} else {
		log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("Admin already exists")
	}
	return nil
}

func verifyUser(c *cli.Context) error {
	username := c.Args().First()
	if username == "" {
		return fmt.Errorf("username argument is required")
	}

	e, closeStore, err := setup(c)
	if err != nil {
		return err
	}
	defer closeStore()

	admins := services.NewAdminService(e.store, e.hasher)
	user, err := admins.VerifyUserByName(c.Context, username)
	if err != nil {
		return err
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User verified")
	return nil
}
