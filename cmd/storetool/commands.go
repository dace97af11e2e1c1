package main

import (
	"context"
	"designer-finder-service/internal/adapters/geo"
	"designer-finder-service/internal/adapters/store"
	"designer-finder-service/internal/config"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/logger"
	"designer-finder-service/internal/ports"
	"designer-finder-service/internal/services"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "storetool",
		Usage: "manage the designer store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the backing document or schema for the configured store",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						tc.log.Info("store ready", zap.String("driver", tc.cfg.StoreDriver))
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "print all designers",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						return listAction(ctx, tc, out)
					})
				},
			},
			{
				Name:  "add",
				Usage: "register a designer, geocoding the address unless --lat and --lon are given",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "designer name", Required: true},
					&cli.StringFlag{Name: "address", Usage: "designer address", Required: true},
					&cli.Float64Flag{Name: "lat", Usage: "latitude (skips geocoding together with --lon)"},
					&cli.Float64Flag{Name: "lon", Usage: "longitude (skips geocoding together with --lat)"},
					&cli.StringFlag{Name: "country", Usage: "country code stored with --lat/--lon", Value: "at"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						return addAction(ctx, cmd, tc, out)
					})
				},
			},
			{
				Name:  "remove",
				Usage: "remove a designer by id",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "designer id", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						id := cmd.String("id")
						if err := tc.designers(nil).Remove(ctx, id); err != nil {
							if errors.Is(err, domain.ErrNotFound) {
								return fmt.Errorf("no designer with id %q", id)
							}
							return err
						}
						fmt.Fprintf(out, "removed %s\n", id)
						return nil
					})
				},
			},
			{
				Name:  "import",
				Usage: "copy designers from a JSON document into the configured store",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "document to read", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						f, err := os.Open(cmd.String("file"))
						if err != nil {
							return fmt.Errorf("import: %w", err)
						}
						defer f.Close()

						n, err := store.ImportDocument(ctx, tc.store, f)
						if err != nil {
							return err
						}
						fmt.Fprintf(out, "imported %d designers\n", n)
						return nil
					})
				},
			},
			{
				Name:  "export",
				Usage: "write every designer in the configured store to a JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "document to write, - for stdout", Value: "-"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withStore(ctx, cmd, func(ctx context.Context, tc *toolContext) error {
						path := cmd.String("file")
						if path == "-" {
							return store.ExportDocument(ctx, tc.store, out)
						}

						f, err := os.Create(path)
						if err != nil {
							return fmt.Errorf("export: %w", err)
						}
						if err := store.ExportDocument(ctx, tc.store, f); err != nil {
							f.Close()
							return err
						}
						return f.Close()
					})
				},
			},
		},
	}
}

// toolContext holds what every subcommand needs once configuration is loaded.
type toolContext struct {
	cfg   config.Config
	log   *zap.Logger
	store store.Backend
}

func (tc *toolContext) designers(resolver ports.AddressResolver) *services.DesignerService {
	return services.NewDesignerService(tc.store, resolver, tc.cfg.GeocodeTimeout)
}

func withStore(ctx context.Context, cmd *cli.Command, fn func(context.Context, *toolContext) error) error {
	if _, err := config.LoadDotEnv(cmd.String("env")); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, closeStore, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	return fn(logger.WithContext(ctx, log), &toolContext{cfg: cfg, log: log, store: s})
}

func listAction(ctx context.Context, tc *toolContext, out io.Writer) error {
	designers, err := tc.designers(nil).List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tCOUNTRY\tCREATED")
	for _, d := range designers {
		location := d.DisplayAddress
		if location == "" {
			location = d.Address
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, location, d.Coords.CountryCode, d.CreatedAt.Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

func addAction(ctx context.Context, cmd *cli.Command, tc *toolContext, out io.Writer) error {
	req := services.RegisterRequest{
		Name:    cmd.String("name"),
		Address: cmd.String("address"),
	}

	var resolver ports.AddressResolver
	switch {
	case cmd.IsSet("lat") && cmd.IsSet("lon"):
		req.Coords = &domain.ResolvedLocation{
			Coordinates: domain.Coordinates{Lon: cmd.Float64("lon"), Lat: cmd.Float64("lat")},
			CountryCode: cmd.String("country"),
		}
	case cmd.IsSet("lat") || cmd.IsSet("lon"):
		return errors.New("add: --lat and --lon must be given together")
	default:
		r, err := geo.NewResolver(tc.cfg, &http.Client{Timeout: 2 * tc.cfg.GeocodeTimeout})
		if err != nil {
			return err
		}
		resolver = r
	}

	d, err := tc.designers(resolver).Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s (%s) at %.5f,%.5f\n", d.ID, d.Name, d.Coords.Lat, d.Coords.Lon)
	return nil
}
