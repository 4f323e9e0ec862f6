// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/poiesic/mealplan"
	"github.com/poiesic/mealplan/core"
	"github.com/poiesic/mealplan/storage"
	"github.com/poiesic/mealplan/storage/directory"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mealplan",
		Usage: "Inspect and back up menu planner data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Aliases: []string{"s"},
				Usage:   "Directory holding the embedded databases",
				Value:   mealplan.DefaultStateDir(),
			},
			&cli.BoolFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "Keep data in a user-selected folder instead of the embedded database",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show which storage is active and what it holds",
				Action: statusCommand,
			},
			{
				Name:      "connect",
				Usage:     "Select the folder used for directory storage",
				ArgsUsage: "<folder>",
				Action:    connectCommand,
			},
			{
				Name:   "export",
				Usage:  "Write a dated JSON backup of all data",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory the backup is written to",
						Value:   ".",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Replace data with the contents of a JSON backup",
				ArgsUsage: "<backup.json>",
				Action:    importCommand,
			},
			{
				Name:   "recipes",
				Usage:  "List recipes",
				Action: recipesCommand,
			},
			{
				Name:      "allergens",
				Usage:     "List allergens, or the allergens of one recipe",
				ArgsUsage: "[recipe-id]",
				Action:    allergensCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "add-system",
						Usage: "Add the regulatory allergens that are missing",
					},
				},
			},
			{
				Name:      "menu",
				Usage:     "Show the dishes planned for a day",
				ArgsUsage: "[YYYY-MM-DD]",
				Action:    menuCommand,
			},
		},
	}
}

// openAdapter creates an adapter for the global flags. A non-empty folder
// turns on directory storage and is used as the picker's answer.
func openAdapter(c *cli.Context, folder string) (*mealplan.Adapter, error) {
	cfg := mealplan.NewConfig(mealplan.WithStateDir(c.String("state-dir")))

	var opts []mealplan.Option
	if c.Bool("directory") || folder != "" {
		opts = append(opts, mealplan.WithHost(&directory.LocalAccess{
			Picker: directory.StaticPicker(folder),
		}))
	}

	adapter, err := mealplan.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return adapter, nil
}

// openReady opens an adapter and loads its data. It fails when directory
// storage still needs a folder.
func openReady(c *cli.Context) (*mealplan.Adapter, error) {
	adapter, err := openAdapter(c, "")
	if err != nil {
		return nil, err
	}
	if !adapter.Init(c.Context) {
		adapter.Close()
		return nil, fmt.Errorf("no folder connected: run %q first", "mealplan --directory connect <folder>")
	}
	return adapter, nil
}

func statusCommand(c *cli.Context) error {
	adapter, err := openAdapter(c, "")
	if err != nil {
		return err
	}
	defer adapter.Close()

	ready := adapter.Init(c.Context)
	out := c.App.Writer

	backend := "embedded database"
	if adapter.UsesFileSystem() {
		backend = "folder"
	}
	fmt.Fprintf(out, "Storage: %s\n", backend)
	fmt.Fprintf(out, "Status: %s\n", adapter.Status())
	if handle, ok := adapter.Folder(); ok {
		fmt.Fprintf(out, "Folder: %s\n", handle.Path)
	}
	if !ready {
		return nil
	}

	snap := adapter.Snapshot()
	fmt.Fprintf(out, "Recipes: %d\n", len(snap.Recipes))
	fmt.Fprintf(out, "Ingredients: %d\n", len(snap.Ingredients))
	fmt.Fprintf(out, "Allergens: %d\n", len(snap.Allergens))
	fmt.Fprintf(out, "Planned days: %d\n", len(snap.Menu))
	fmt.Fprintf(out, "Language: %s\n", snap.Settings.Language)
	return nil
}

func connectCommand(c *cli.Context) error {
	folder := c.Args().First()
	if folder == "" {
		return fmt.Errorf("folder is required")
	}

	adapter, err := openAdapter(c, folder)
	if err != nil {
		return err
	}
	defer adapter.Close()

	if !adapter.SelectFolder(c.Context) {
		return fmt.Errorf("could not use folder %s", folder)
	}
	handle, _ := adapter.Folder()
	fmt.Fprintf(c.App.Writer, "Connected to %s (%d recipes)\n", handle.Path, len(adapter.Recipes()))
	return nil
}

func exportCommand(c *cli.Context) error {
	adapter, err := openReady(c)
	if err != nil {
		return err
	}
	defer adapter.Close()

	path, err := adapter.ExportToDir(c.Context, c.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}

func importCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("backup file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	adapter, err := openReady(c)
	if err != nil {
		return err
	}
	defer adapter.Close()

	if !adapter.Import(c.Context, f) {
		return fmt.Errorf("%s is not a valid backup", path)
	}
	fmt.Fprintf(c.App.Writer, "Imported %s\n", path)
	return nil
}

func recipesCommand(c *cli.Context) error {
	adapter, err := openReady(c)
	if err != nil {
		return err
	}
	defer adapter.Close()

	snap := adapter.Snapshot()
	recipes := snap.Recipes
	slices.SortFunc(recipes, func(a, b core.Recipe) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tNAME\tALLERGENS")
	for _, r := range recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Category, r.Name,
			allergenNames(core.RecipeAllergens(r, snap.Ingredients, snap.Allergens)))
	}
	return w.Flush()
}

func allergensCommand(c *cli.Context) error {
	adapter, err := openReady(c)
	if err != nil {
		return err
	}
	defer adapter.Close()

	snap := adapter.Snapshot()
	if c.Bool("add-system") {
		added := addMissingAllergens(snap.Allergens, core.SystemAllergens())
		if len(added) > len(snap.Allergens) {
			adapter.Save(c.Context, storage.Allergens, added)
			slog.Info("added system allergens", "count", len(added)-len(snap.Allergens))
		}
		snap.Allergens = added
	}

	allergens := snap.Allergens
	if id := c.Args().First(); id != "" {
		recipe := core.FindRecipe(snap.Recipes, id)
		if recipe == nil {
			return fmt.Errorf("recipe %q not found", id)
		}
		allergens = core.RecipeAllergens(*recipe, snap.Ingredients, snap.Allergens)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tSYSTEM")
	for _, a := range allergens {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", a.ID, a.Name, a.Color, a.IsSystem)
	}
	return w.Flush()
}

func menuCommand(c *cli.Context) error {
	date := c.Args().First()
	if date == "" {
		date = core.MenuKey(time.Now())
	}
	if err := core.ValidateMenuDate(date); err != nil {
		return err
	}

	adapter, err := openReady(c)
	if err != nil {
		return err
	}
	defer adapter.Close()

	snap := adapter.Snapshot()
	day, ok := snap.Menu[date]
	if !ok {
		fmt.Fprintf(c.App.Writer, "Nothing planned for %s\n", date)
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tCATEGORY\tRECIPE")
	for _, slot := range core.Slots {
		entry, ok := day[slot]
		if !ok {
			continue
		}
		name := "-"
		if entry.Recipe != nil {
			if r := core.FindRecipe(snap.Recipes, *entry.Recipe); r != nil {
				name = r.Name
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", slot, entry.Category, name)
	}
	return w.Flush()
}

// addMissingAllergens appends every catalog allergen whose ID is not in
// current yet.
func addMissingAllergens(current, catalog []core.Allergen) []core.Allergen {
	out := core.CloneAllergens(current)
	for _, a := range catalog {
		if core.FindAllergen(out, a.ID) == nil {
			out = append(out, a)
		}
	}
	return out
}

func allergenNames(allergens []core.Allergen) string {
	if len(allergens) == 0 {
		return "-"
	}
	names := make([]string, len(allergens))
	for i, a := range allergens {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
