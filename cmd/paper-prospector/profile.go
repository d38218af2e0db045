// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-prospector/internal/player"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show discovery points, level, and mission progress",
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	libCfg := libraryConfig(cmd)
	profile, err := player.Load(libCfg.LibraryDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Level %d  (%d points)\n", profile.Level(), profile.Points)
	fmt.Fprintf(os.Stdout, "Collected: %d  Hidden gems: %d  Reviews: %d\n\n",
		profile.Collected, profile.GemsFound, profile.Reviews)

	fmt.Fprintln(os.Stdout, "Missions:")
	for _, m := range player.Missions() {
		status := fmt.Sprintf("%d/%d", m.Progress(profile), m.Target)
		if profile.Completed(m.ID) {
			status = "done"
		}
		fmt.Fprintf(os.Stdout, "  [%-5s] %-35s +%d points\n", status, m.Description, m.Reward)
	}
	return nil
}
