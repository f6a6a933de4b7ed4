package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dechivo/skillgraph/query"
	"github.com/dechivo/skillgraph/sfia"
	"github.com/dechivo/skillgraph/store/cache"
)

var searchProfile bool

func newQueryService() (*query.Service, error) {
	p, err := loadProfile()
	if err != nil {
		return nil, err
	}
	c := cache.New(cache.Config{DefaultTTL: p.CacheTTL})
	cobra.OnFinalize(func() { _ = c.Close() })
	return query.NewService(newFusekiClient(p), p.Dataset,
		query.WithTimeout(p.QueryTimeout),
		query.WithEnabled(p.KGEnabled),
		query.WithCache(c)), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search occupations in the unified graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newQueryService()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if searchProfile {
			profile := svc.GetOccupationCompleteProfile(ctx, args[0])
			if !profile.Found {
				return errors.Errorf("no occupation found matching %q", args[0])
			}
			return printJSON(cmd, profile)
		}

		occupations := svc.SearchOccupations(ctx, args[0])
		if len(occupations) == 0 {
			return errors.Errorf("no occupation found matching %q", args[0])
		}
		return printJSON(cmd, occupations)
	},
}

var gapCmd = &cobra.Command{
	Use:   "gap <current occupation> <target occupation>",
	Short: "Calculate the skill gap between two occupations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newQueryService()
		if err != nil {
			return err
		}
		gap := svc.CalculateSkillGap(cmd.Context(), args[0], args[1])
		if !gap.Found {
			return errors.New("one or both occupations not found")
		}
		return printJSON(cmd, gap)
	},
}

var sfiaCmd = &cobra.Command{
	Use:   "sfia",
	Short: "Query the SFIA skill framework dataset",
}

func newSFIAService() (*sfia.Service, error) {
	p, err := loadProfile()
	if err != nil {
		return nil, err
	}
	return sfia.NewService(newFusekiClient(p), p.SFIADataset,
		sfia.WithTimeout(p.QueryTimeout)), nil
}

func init() {
	searchCmd.Flags().BoolVar(&searchProfile, "profile", false, "return the complete profile of the best match")

	sfiaCmd.AddCommand(
		&cobra.Command{
			Use:   "skill <code>",
			Short: "Show a SFIA skill with its level table",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := newSFIAService()
				if err != nil {
					return err
				}
				detail := svc.GetSkillByCode(cmd.Context(), args[0])
				if detail == nil {
					return errors.Errorf("no SFIA skill with code %q", args[0])
				}
				return printJSON(cmd, detail)
			},
		},
		&cobra.Command{
			Use:   "search <keyword>",
			Short: "Search SFIA skills",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := newSFIAService()
				if err != nil {
					return err
				}
				return printJSON(cmd, svc.SearchSkills(cmd.Context(), args[0], 0))
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show SFIA dataset statistics",
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := newSFIAService()
				if err != nil {
					return err
				}
				return printJSON(cmd, svc.Stats(cmd.Context()))
			},
		},
	)
}
