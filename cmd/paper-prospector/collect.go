// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-prospector/internal/library"
	"github.com/pdiddy/paper-prospector/internal/player"
)

var collectCmd = &cobra.Command{
	Use:   "collect <rank>",
	Short: "File a search result into the library by rank",
	Long: `Collect takes a rank from the most recent search and files that paper
into the local library, preserving its scores exactly as searched.
Collecting awards discovery points; hidden gems pay a bonus.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	rank, err := strconv.Atoi(args[0])
	if err != nil || rank < 1 {
		return fmt.Errorf("rank must be a positive integer, got %q", args[0])
	}

	libCfg := libraryConfig(cmd)
	batch, err := library.LoadSearch(libCfg.LibraryDir)
	if err != nil {
		return err
	}
	if rank > len(batch.Papers) {
		return fmt.Errorf("rank %d out of range: last search returned %d result(s)", rank, len(batch.Papers))
	}
	paper := batch.Papers[rank-1]

	store, err := library.NewStore(libCfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Collect(context.Background(), paper); err != nil {
		return err
	}

	profile, err := player.Load(libCfg.LibraryDir)
	if err != nil {
		return err
	}
	points := profile.AwardCollect(paper)
	completed := player.CheckMissions(&profile)
	if err := player.Save(libCfg.LibraryDir, profile); err != nil {
		return err
	}

	fmt.Printf("Collected %q (+%d points)\n", paper.Title, points)
	for _, m := range completed {
		fmt.Printf("Mission complete: %s (+%d points)\n", m.Description, m.Reward)
	}
	fmt.Printf("Points: %d (level %d)\n", profile.Points, profile.Level())
	return nil
}
