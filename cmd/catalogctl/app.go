package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/bootstrap"
	"github.com/yigit/edutech/internal/db"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/seed"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "catalogctl",
		Usage: "query the course catalog and manage the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   bootstrap.DefaultConfigPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"EDUTECH_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			searchCommand(),
			teachersCommand(),
			migrateCommand(),
			seedCommand(),
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "filter and sort the built-in catalog and print the result as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "search text"},
			&cli.StringSliceFlag{Name: "category", Usage: "category to include (repeatable)"},
			&cli.StringSliceFlag{Name: "university", Usage: "university to include (repeatable)"},
			&cli.StringSliceFlag{Name: "level", Usage: "level to include (repeatable)"},
			&cli.StringFlag{Name: "min-price", Usage: "minimum price in rupees"},
			&cli.StringFlag{Name: "max-price", Usage: "maximum price in rupees"},
			&cli.Float64Flag{Name: "min-rating", Usage: "minimum rating"},
			&cli.StringFlag{Name: "sort", Value: string(catalog.SortPopularity), Usage: "popularity, newest, price-asc, price-desc or rating"},
		},
		Action: func(c *cli.Context) error {
			spec, err := filterSpecFromFlags(c)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, catalog.Query(seed.DefaultCourses(), spec))
		},
	}
}

// filterSpecFromFlags builds a FilterSpec from the search flags
func filterSpecFromFlags(c *cli.Context) (catalog.FilterSpec, error) {
	spec := catalog.FilterSpec{
		SearchText:   c.String("query"),
		Categories:   c.StringSlice("category"),
		Universities: c.StringSlice("university"),
		MinRating:    c.Float64("min-rating"),
		SortKey:      catalog.ParseSortKey(c.String("sort")),
	}
	for _, l := range c.StringSlice("level") {
		spec.Levels = append(spec.Levels, models.Level(l))
	}

	if c.IsSet("min-price") || c.IsSet("max-price") {
		r := catalog.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxInt64)}
		if c.IsSet("min-price") {
			v, err := decimal.NewFromString(c.String("min-price"))
			if err != nil {
				return spec, fmt.Errorf("invalid --min-price: %w", err)
			}
			r.Min = v
		}
		if c.IsSet("max-price") {
			v, err := decimal.NewFromString(c.String("max-price"))
			if err != nil {
				return spec, fmt.Errorf("invalid --max-price: %w", err)
			}
			r.Max = v
		}
		spec.PriceRange = &r
	}

	return spec, nil
}

func teachersCommand() *cli.Command {
	return &cli.Command{
		Name:      "teachers",
		Usage:     "print the teacher directory of the built-in catalog, or one teacher's courses",
		ArgsUsage: "[slug]",
		Action: func(c *cli.Context) error {
			courses := seed.DefaultCourses()
			if c.NArg() == 0 {
				return printJSON(c.App.Writer, catalog.Teachers(courses))
			}

			_, own, ok := catalog.TeacherProfile(courses, c.Args().First())
			if !ok {
				return cli.Exit(fmt.Sprintf("no teacher %q in the catalog", c.Args().First()), 1)
			}
			return printJSON(c.App.Writer, own)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending database migrations",
		Action: func(c *cli.Context) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
			if err != nil {
				return err
			}
			database, err := bootstrap.SetupDatabase(c.Context, cfg, lgr)
			if err != nil {
				return err
			}
			database.Close()
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create the default catalog and demo users",
		Action: func(c *cli.Context) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
			if err != nil {
				return err
			}
			database, err := db.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			return bootstrap.SeedDatabase(c.Context, database, lgr)
		},
	}
}
