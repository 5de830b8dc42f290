package main

import (
	"context"
	"fmt"

	"github.com/inful/mdgraph/internal/config"
	"github.com/inful/mdgraph/internal/errors"
	"github.com/inful/mdgraph/internal/linkstore"
)

// runLinks queries the link database: with a target argument it prints the
// source locations referencing that target, otherwise the distinct targets
// of the requested kind.
func runLinks(cfg *config.Config) error {
	if cfg.LinkDB == "" {
		return errors.ConfigRequired("link_db")
	}

	store, err := linkstore.Open(cfg.LinkDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if CLI.Links.Target != "" {
		locs, err := store.SourcesFor(ctx, CLI.Links.Kind, CLI.Links.Target)
		if err != nil {
			return err
		}
		for _, loc := range locs {
			fmt.Printf("%s:%d\n", loc.File, loc.Line)
		}
		return nil
	}

	targets, err := store.Targets(ctx, CLI.Links.Kind)
	if err != nil {
		return err
	}
	for _, target := range targets {
		fmt.Println(target)
	}
	return nil
}
