// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/hortus/internal/app"
	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/core/reference"
	"github.com/taibuivan/hortus/internal/guard"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/pkg/pagination"
)

// guarded restores the session and applies the same role gate as the
// matching web page. location names that page.
func guarded(cmd *cobra.Command, options *rootOptions, location string, required ...sec.Role) (*app.App, error) {
	wired, err := session(cmd, options)
	if err != nil {
		return nil, err
	}

	if err := guard.Decide(wired.Manager.Session(), location, required...).Err(); err != nil {
		wired.Close()
		return nil, err
	}
	return wired, nil
}

// newTable returns a tab-aligned writer over the command's stdout.
func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

// # Plants

func newPlantsCommand(options *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "plants",
		Short: "Browse the living collection",
	}
	command.AddCommand(newPlantsListCommand(options), newPlantsShowCommand(options))
	return command
}

func newPlantsListCommand(options *rootOptions) *cobra.Command {
	var (
		params    pagination.Params
		filters   plant.Filters
		dept      string
		herbarium bool
	)

	command := &cobra.Command{
		Use:   "list",
		Short: "List plants, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Department = plant.Department(dept)
			if cmd.Flags().Changed("herbarium") {
				filters.HasHerbarium = &herbarium
			}

			wired, err := guarded(cmd, options, plant.EndpointPlants)
			if err != nil {
				return err
			}
			defer wired.Close()

			page, err := wired.Plants.ListPlants(cmd.Context(), params, filters)
			if err != nil {
				return err
			}

			table := newTable(cmd)
			fmt.Fprintln(table, "ID\tINVENTORY\tNAME\tDEPARTMENT\tLOCATION")
			for i := range page.Data {
				item := &page.Data[i]
				location := ""
				if item.Location != nil {
					location = item.Location.Name
				}
				fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.InventoryNumber, item.ScientificName(), item.Department, location)
			}
			if err := table.Flush(); err != nil {
				return err
			}

			meta := page.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d plants)\n", meta.Page, meta.TotalPages, meta.Total)
			return nil
		},
	}

	flags := command.Flags()
	flags.IntVar(&params.Page, "page", pagination.DefaultPage, "Page number")
	flags.IntVar(&params.Limit, "limit", pagination.DefaultLimit, "Plants per page")
	flags.StringVar(&dept, "department", "", "Department filter")
	flags.Int64Var(&filters.FamilyID, "family", 0, "Family ID filter")
	flags.Int64Var(&filters.LocationID, "location", 0, "Location ID filter")
	flags.StringVar(&filters.Genus, "genus", "", "Genus filter")
	flags.StringVar(&filters.Species, "species", "", "Species filter")
	flags.StringVar(&filters.InventoryNumber, "inventory", "", "Inventory number filter")
	flags.BoolVar(&herbarium, "herbarium", false, "Only plants with (true) or without (false) a herbarium sheet")

	return command
}

func newPlantsShowCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one plant with its observations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid plant ID %q", args[0])
			}

			wired, err := guarded(cmd, options, fmt.Sprintf("%s/%d", plant.EndpointPlants, id))
			if err != nil {
				return err
			}
			defer wired.Close()

			ctx := cmd.Context()
			item, err := wired.Plants.GetPlant(ctx, id)
			if err != nil {
				return err
			}
			phenology, err := wired.Plants.ListPhenology(ctx, id)
			if err != nil {
				return err
			}
			biometry, err := wired.Plants.ListBiometry(ctx, id)
			if err != nil {
				return err
			}

			writePlant(cmd.OutOrStdout(), item, phenology, biometry)
			return nil
		},
	}
}

// writePlant renders the detail page of a plant as text.
func writePlant(out io.Writer, item *plant.Plant, phenology []plant.Phenology, biometry []plant.Biometry) {
	fmt.Fprintf(out, "%s  #%s\n", item.ScientificName(), item.InventoryNumber)
	if item.Family != nil {
		fmt.Fprintf(out, "Family:      %s\n", item.Family.Name)
	}
	if item.Location != nil {
		fmt.Fprintf(out, "Location:    %s\n", item.Location.Name)
	}
	fmt.Fprintf(out, "Department:  %s\n", item.Department)
	fmt.Fprintf(out, "Herbarium:   %t\n", item.HasHerbarium)
	if item.Notes != nil && *item.Notes != "" {
		fmt.Fprintf(out, "Notes:       %s\n", *item.Notes)
	}

	fmt.Fprintf(out, "\nPhenology (%d)\n", len(phenology))
	for _, record := range phenology {
		stages := []string{}
		if record.FloweringStart != "" {
			stages = append(stages, "flowering "+record.FloweringStart+".."+record.FloweringEnd)
		}
		if record.FruitingStart != "" {
			stages = append(stages, "fruiting "+record.FruitingStart+".."+record.FruitingEnd)
		}
		fmt.Fprintf(out, "  %d  %s\n", record.Year, strings.Join(stages, ", "))
	}

	fmt.Fprintf(out, "\nBiometry (%d)\n", len(biometry))
	for _, record := range biometry {
		height := "-"
		if record.Height != nil {
			height = strconv.FormatFloat(*record.Height, 'f', -1, 64)
		}
		fmt.Fprintf(out, "  %s  height %s\n", record.Date, height)
	}
}

// # Reference Data

func newFamiliesCommand(options *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "families",
		Short: "Botanical families",
	}
	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := guarded(cmd, options, reference.EndpointFamilies)
			if err != nil {
				return err
			}
			defer wired.Close()

			families, err := wired.Reference.ListFamilies(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable(cmd)
			fmt.Fprintln(table, "ID\tNAME")
			for _, family := range families {
				fmt.Fprintf(table, "%d\t%s\n", family.ID, family.Name)
			}
			return table.Flush()
		},
	})
	return command
}

func newLocationsCommand(options *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "locations",
		Short: "Garden locations",
	}
	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wired, err := guarded(cmd, options, reference.EndpointLocations)
			if err != nil {
				return err
			}
			defer wired.Close()

			locations, err := wired.Reference.ListLocations(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable(cmd)
			fmt.Fprintln(table, "ID\tNAME\tDESCRIPTION")
			for _, location := range locations {
				description := ""
				if location.Description != nil {
					description = *location.Description
				}
				fmt.Fprintf(table, "%d\t%s\t%s\n", location.ID, location.Name, description)
			}
			return table.Flush()
		},
	})
	return command
}

// # Reports

func newExportCommand(options *rootOptions) *cobra.Command {
	var (
		out     string
		filters plant.Filters
		dept    string
	)

	command := &cobra.Command{
		Use:       "export FORMAT",
		Short:     "Download a catalogue report",
		Long:      "Download a catalogue report. FORMAT is one of: " + strings.Join(plant.ExportFormats, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: plant.ExportFormats,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Department = plant.Department(dept)

			wired, err := guarded(cmd, options, "/reports/export/"+args[0])
			if err != nil {
				return err
			}
			defer wired.Close()

			download, err := wired.Plants.Export(cmd.Context(), plant.ExportFormat(args[0]), filters)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(download.Body)
				return err
			}
			if out == "" {
				out = download.Filename
			}
			if err := os.WriteFile(out, download.Body, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s (%d bytes).\n", out, len(download.Body))
			return nil
		},
	}

	flags := command.Flags()
	flags.StringVarP(&out, "out", "o", "", "Output file, or - for stdout (defaults to the name given by the API)")
	flags.StringVar(&dept, "department", "", "Department filter")
	flags.Int64Var(&filters.FamilyID, "family", 0, "Family ID filter")
	flags.Int64Var(&filters.LocationID, "location", 0, "Location ID filter")

	return command
}
