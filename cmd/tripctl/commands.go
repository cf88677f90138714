package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/domain"
)

func typesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List travel types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, tt := range a.catalog.TravelTypes() {
				a.printf("%-12s %s\t[%s]\n", tt.ID, tt.TitleKo, strings.Join(tt.IncludeTags, ", "))
			}
			return nil
		},
	}
}

func categoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List checklist categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range a.catalog.Categories() {
				a.printf("%-14s %s\n", c.ID, c.TitleKo)
			}
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trips := a.trips.Trips()
			if len(trips) == 0 {
				a.printf("no trips\n")
				return nil
			}
			for _, t := range trips {
				a.printf("%s  %-24s %s, %s  %s~%s  %3d%%\n",
					t.ID, t.Title, t.Destination.City, t.Destination.Country,
					t.StartDate, t.EndDate, a.trips.Progress(t.ID))
			}
			return nil
		},
	}
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Show a trip's checklist grouped by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := a.trips.Get(args[0])
			if err != nil {
				return tripNotFound(args[0], err)
			}
			a.printf("%s (%s)\n", trip.Title, trip.ID)
			a.printf("%s, %s  %s~%s  type=%s  progress=%d%%\n",
				trip.Destination.City, trip.Destination.Country, trip.StartDate, trip.EndDate,
				trip.Type, a.trips.Progress(trip.ID))

			titles := make(map[string]string)
			for _, c := range a.catalog.Categories() {
				titles[c.ID] = c.TitleKo
			}
			for _, cp := range a.catalog.CategoryProgress(trip.Checklist) {
				a.printf("\n%s %s (%d/%d)\n", cp.CategoryID, titles[cp.CategoryID], cp.Checked, cp.Total)
				for _, it := range checklist.ByCategory(trip.Checklist, cp.CategoryID) {
					a.printf("  %s\n", formatItem(it))
				}
			}
			return nil
		},
	}
}

func createCmd(a *app) *cobra.Command {
	var in domain.TripInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip with a generated checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in = domain.NormalizeTripInput(in)
			if err := domain.ValidateTripInput(in); err != nil {
				return err
			}
			trip, err := a.trips.CreateTrip(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.printf("created %s with %d items\n", trip.ID, len(trip.Checklist))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "trip title")
	f.StringVar(&in.Destination.Country, "country", "", "destination country")
	f.StringVar(&in.Destination.City, "city", "", "destination city (defaults to the country)")
	f.StringVar(&in.StartDate, "start", "", "start date")
	f.StringVar(&in.EndDate, "end", "", "end date")
	f.StringVar(&in.Type, "type", "", "travel type id, see 'tripctl types'")
	return cmd
}

func renameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <trip-id> <title>",
		Short: "Change a trip's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.trips.Get(args[0]); err != nil {
				return tripNotFound(args[0], err)
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return fmt.Errorf("%w: title must not be blank", domain.ErrValidation)
			}
			return a.trips.UpdateTrip(cmd.Context(), args[0], domain.TripPatch{Title: &title})
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.trips.Get(args[0]); err != nil {
				return tripNotFound(args[0], err)
			}
			return a.trips.DeleteTrip(cmd.Context(), args[0])
		},
	}
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <trip-id> <item-id>",
		Short: "Toggle an item's checked flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireItem(args[0], args[1]); err != nil {
				return err
			}
			if err := a.trips.ToggleCheckItem(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return a.printItem(args[0], args[1])
		},
	}
}

func starCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "star <trip-id> <item-id>",
		Short: "Toggle an item's important flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireItem(args[0], args[1]); err != nil {
				return err
			}
			if err := a.trips.ToggleImportant(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return a.printItem(args[0], args[1])
		},
	}
}

func addItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-item <trip-id> <category-id> <title>",
		Short: "Add a custom item to a trip",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.trips.Get(args[0]); err != nil {
				return tripNotFound(args[0], err)
			}
			title := strings.TrimSpace(strings.Join(args[2:], " "))
			if err := domain.ValidateItemTitle(title); err != nil {
				return err
			}
			if !a.knownCategory(args[1]) {
				return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, args[1])
			}
			item, err := a.trips.AddCustomItem(cmd.Context(), args[0], args[1], title)
			if err != nil {
				return err
			}
			a.printf("added %s\n", item.ID)
			return nil
		},
	}
}

func removeItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <trip-id> <item-id>",
		Short: "Remove an item from a trip's checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireItem(args[0], args[1]); err != nil {
				return err
			}
			return a.trips.DeleteCheckItem(cmd.Context(), args[0], args[1])
		},
	}
}

func progressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <trip-id>",
		Short: "Print a trip's completion percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trip, err := a.trips.Get(args[0])
			if err != nil {
				return tripNotFound(args[0], err)
			}
			a.printf("%d%%\n", a.trips.Progress(trip.ID))
			for _, cp := range a.catalog.CategoryProgress(trip.Checklist) {
				a.printf("  %-14s %d/%d\n", cp.CategoryID, cp.Checked, cp.Total)
			}
			return nil
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every trip and item as a flat table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := a.export.Export()
			switch format {
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			case "csv":
				w := csv.NewWriter(a.out)
				if err := w.Write(domain.ExportCSVHeader); err != nil {
					return err
				}
				for _, r := range rows {
					if err := w.Write(r.CSVRecord()); err != nil {
						return err
					}
				}
				w.Flush()
				return w.Error()
			default:
				return fmt.Errorf("unknown format %q, want json or csv", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	return cmd
}

func resetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete all trips without --yes")
			}
			if err := a.trips.Reset(cmd.Context()); err != nil {
				return err
			}
			a.printf("all trips deleted\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all trips")
	return cmd
}

// --- helpers ------------------------------------------------------------------

func (a *app) requireItem(tripID, itemID string) error {
	trip, err := a.trips.Get(tripID)
	if err != nil {
		return tripNotFound(tripID, err)
	}
	for _, it := range trip.Checklist {
		if it.ID == itemID {
			return nil
		}
	}
	return fmt.Errorf("item %s not found in trip %s: %w", itemID, tripID, domain.ErrNotFound)
}

func (a *app) printItem(tripID, itemID string) error {
	trip, err := a.trips.Get(tripID)
	if err != nil {
		return tripNotFound(tripID, err)
	}
	for _, it := range trip.Checklist {
		if it.ID == itemID {
			a.printf("%s\n", formatItem(it))
			return nil
		}
	}
	return fmt.Errorf("item %s not found in trip %s: %w", itemID, tripID, domain.ErrNotFound)
}

func (a *app) knownCategory(id string) bool {
	for _, c := range a.catalog.Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// formatItem renders "[x] * Passport (passport)": checked box, important star.
func formatItem(it domain.ChecklistItem) string {
	box, star := "[ ]", " "
	if it.Checked {
		box = "[x]"
	}
	if it.Important {
		star = "*"
	}
	title := it.Title
	if it.LocalizedTitle != "" {
		title = it.LocalizedTitle
	}
	return fmt.Sprintf("%s %s %s (%s)", box, star, title, it.ID)
}

func tripNotFound(id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("trip %s not found: %w", id, domain.ErrNotFound)
	}
	return err
}
