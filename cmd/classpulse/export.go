package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelora/classpulse/pkg/analyzer/export"
)

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export per-student analytics as JSON or CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   "json",
				Usage:   "Export format: json, csv",
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	var format export.Format
	switch c.String("type") {
	case "json":
		format = export.FormatJSON
	case "csv":
		format = export.FormatCSV
	default:
		return fmt.Errorf("invalid export type %q: want json or csv", c.String("type"))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	data, err := loadDataset(c.Context, st)
	if err != nil {
		return err
	}

	exporter := export.New(
		export.WithQuality(qualityAnalyzer(cfg)),
		export.WithConsistency(consistencyAnalyzer(cfg)),
	)
	now := time.Now().UTC()

	var w io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case export.FormatCSV:
		csv, err := exporter.CSV(data.students, data.repos, data.commits, now)
		if err != nil {
			return fmt.Errorf("building CSV export: %w", err)
		}
		_, err = io.WriteString(w, csv)
		return err
	default:
		payload := exporter.JSON(data.students, data.repos, data.commits, now)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
}
