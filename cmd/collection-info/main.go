package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getAlby/royaltyhub.go/db"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

// CollectionInfo is the summary printed after a deployment to check the collection is reachable.
type CollectionInfo struct {
	Name           string    `json:"name" yaml:"name"`
	Symbol         string    `json:"symbol" yaml:"symbol"`
	CurrentTokenID int64     `json:"current_token_id" yaml:"current_token_id"`
	Store          string    `json:"store" yaml:"store"`
	CheckedAt      time.Time `json:"checked_at" yaml:"checked_at"`
}

func main() {
	app := cli.NewApp()
	app.Name = "collection-info"
	app.Usage = "print the collection summary of a royaltyhub deployment"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "format, f",
			Value: "json",
			Usage: "output format, json or yaml",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "write the summary to this file instead of STDOUT",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 10 * time.Second,
			Usage: "timeout for reading the store",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	c := &service.Config{}
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Error loading environment variables: %v", err), 1)
	}

	backend, err := db.BackendFor(c.DatabaseUri)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), ctx.Duration("timeout"))
	defer cancel()
	// read only: a schema that is behind is reported, never migrated from here
	store, closeStore, err := db.OpenStore(timeoutCtx, c)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Error initializing store: %v", err), 1)
	}
	defer closeStore()

	info, err := collectInfo(timeoutCtx, royalty.NewRegistry(store), string(backend), time.Now())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var out io.Writer = os.Stdout
	if path := ctx.String("out"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer file.Close()
		out = file
	}
	if err := writeInfo(out, info, ctx.String("format")); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func collectInfo(ctx context.Context, registry *royalty.Registry, storeName string, now time.Time) (*CollectionInfo, error) {
	collection, err := registry.Collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}
	return &CollectionInfo{
		Name:           collection.Name,
		Symbol:         collection.Symbol,
		CurrentTokenID: collection.TokenCount,
		Store:          storeName,
		CheckedAt:      now.UTC(),
	}, nil
}

func writeInfo(w io.Writer, info *CollectionInfo, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(info)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
