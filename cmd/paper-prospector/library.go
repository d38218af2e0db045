// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-prospector/internal/evaluate"
	"github.com/pdiddy/paper-prospector/internal/library"
	"github.com/pdiddy/paper-prospector/internal/player"
	"github.com/pdiddy/paper-prospector/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the collected paper library",
	Long: `Library manages the local SQLite collection of collected papers. Use
subcommands to list, export, soft-delete, restore, or review entries.
Papers are addressed by their library ID: the lowercased DOI, or a slug
of the title when no DOI is known.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collected papers ranked by potential",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := library.NewStore(libraryConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	class, _ := cmd.Flags().GetString("class")
	includeDeleted, _ := cmd.Flags().GetBool("deleted")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	entries, err := store.List(context.Background(), library.ListOptions{
		Classification: types.Classification(class),
		IncludeDeleted: includeDeleted,
		MaxResults:     maxResults,
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-45s  %4s  %3s  %3s  %-13s  %s\n",
		"ID", "Title", "Year", "Pot", "Imp", "Type", "Flags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 125))
	for _, e := range entries {
		title := e.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		id := e.ID
		if len(id) > 40 {
			id = id[:37] + "..."
		}
		var flags []string
		if e.IsReviewed {
			flags = append(flags, fmt.Sprintf("final=%d", e.FinalScore))
		}
		if e.RiskReason != "" {
			flags = append(flags, e.RiskReason)
		}
		if e.Deleted {
			flags = append(flags, "deleted")
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-45s  %4d  %3d  %3d  %-13s  %s\n",
			id, title, e.Year, e.PotentialScore, e.ImpactScore,
			e.Classification, strings.Join(flags, ", "))
	}

	counts, err := store.CountByClassification(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d shown (%d hidden gems in library)\n",
		len(entries), counts[types.ClassAmazing])
	return nil
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library to BibTeX or CSV",
	Long: `Export writes the library to stdout as BibTeX (for citation managers)
or CSV (for spreadsheets). Scores are embedded in the BibTeX note field
and as dedicated CSV columns.`,
	RunE: runLibraryExport,
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	store, err := library.NewStore(libraryConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	class, _ := cmd.Flags().GetString("class")
	opts := library.ListOptions{Classification: types.Classification(class)}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "bibtex", "":
		return store.ExportBibTeX(context.Background(), opts, os.Stdout)
	case "csv":
		return store.ExportCSV(context.Background(), opts, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use bibtex or csv", format)
	}
}

// --- delete / restore subcommands ---

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Soft-delete a paper (recoverable with restore)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s (restore with 'library restore')\n", args[0])
		return nil
	},
}

var libraryRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted paper",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := library.NewStore(libraryConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Restore(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", args[0])
		return nil
	},
}

// --- review subcommand ---

var libraryReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Verify a collected paper and bank its review bonus",
	Long: `Review marks a paper as personally verified, reclassifies it as
verified_user, and banks a one-time bonus into its final score. Papers
the integrity check flagged require --force.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryReview,
}

func runLibraryReview(cmd *cobra.Command, args []string) error {
	libCfg := libraryConfig(cmd)
	store, err := library.NewStore(libCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	entry, err := store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading paper %s: %w", args[0], err)
	}
	if entry.IsReviewed {
		fmt.Printf("%s is already reviewed (final score %d)\n", entry.ID, entry.FinalScore)
		return nil
	}

	force, _ := cmd.Flags().GetBool("force")
	reviewed, err := evaluate.Review(entry.EvaluatedPaper, force)
	if err != nil {
		return err
	}
	if err := store.ApplyReview(ctx, entry.ID, reviewed); err != nil {
		return err
	}

	profile, err := player.Load(libCfg.LibraryDir)
	if err != nil {
		return err
	}
	points := profile.AwardReview()
	completed := player.CheckMissions(&profile)
	if err := player.Save(libCfg.LibraryDir, profile); err != nil {
		return err
	}

	fmt.Printf("Reviewed %q: final score %d (+%d points)\n",
		reviewed.Title, reviewed.FinalScore, points)
	for _, m := range completed {
		fmt.Printf("Mission complete: %s (+%d points)\n", m.Description, m.Reward)
	}
	return nil
}

func init() {
	libraryListCmd.Flags().String("class", "", "filter by classification: amazing, bubble, bad, normal, verified_user")
	libraryListCmd.Flags().Bool("deleted", false, "include soft-deleted papers")
	libraryListCmd.Flags().Int("max-results", 0, "maximum entries to list (0 = store default)")
	libraryListCmd.Flags().Bool("json", false, "output entries as JSON")

	libraryExportCmd.Flags().String("format", "bibtex", "export format: bibtex or csv")
	libraryExportCmd.Flags().String("class", "", "export only one classification")

	libraryReviewCmd.Flags().Bool("force", false, "approve a paper the integrity check flagged")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	libraryCmd.AddCommand(libraryRestoreCmd)
	libraryCmd.AddCommand(libraryReviewCmd)

	rootCmd.AddCommand(libraryCmd)
}
