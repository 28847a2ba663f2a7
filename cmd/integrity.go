package cmd

import (
	"event-media-backend/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func integrityCommand() *cli.Command {
	return &cli.Command{
		Name:  "integrity",
		Usage: "report records that reference deleted users or events",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "apply", Usage: "delete the orphaned records"},
		},
		Action: integrity,
	}
}

func integrity(c *cli.Context) error {
	e, closeStore, err := setup(c)
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := services.NewIntegrityService(e.store).Check(c.Context, c.Bool("apply"))
	if err != nil {
		return err
	}

	log.Info().
		Int("orphan_events", len(report.OrphanEvents)).
		Int("orphan_media", len(report.OrphanMedia)).
		Int("orphan_notifications", len(report.OrphanNotifications)).
		Bool("applied", report.Applied).
		Msg("Integrity check finished")

	if report.Total() > 0 && !report.Applied {
		log.Warn().Msg("Run with --apply to delete the orphaned records")
	}
	return nil
}
