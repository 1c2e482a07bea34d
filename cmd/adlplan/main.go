// Command adlplan is a thin CLI front end over pkg/adl: ground a domain's
// actions against a state, check whether a goal is satisfied, or run the
// bundled blocks-world demo end to end.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"

	"github.com/gitrdm/adlcore/examples/blocksworld/scenario"
	"github.com/gitrdm/adlcore/pkg/adl"
)

var (
	log           hclog.Logger
	verbose       bool
	maxGroundings int
	configPath    string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adlplan",
		Short: "Ground, check and run classical action-description-language problems",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := hclog.Info
			if verbose {
				level = hclog.Debug
			}
			log = hclog.New(&hclog.LoggerOptions{
				Name:  "adlplan",
				Level: level,
			})
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().IntVar(&maxGroundings, "max-groundings", adl.DefaultConfig().MaxGroundingsPerSchema, "max ground instances per action schema")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a JSON file overriding adl.Config tunables")

	root.AddCommand(groundCmd(), checkCmd(), runCmd())
	return root
}

// config builds the effective adl.Config: defaults, overridden by --config
// (a loosely-typed JSON object decoded with mapstructure so callers aren't
// forced to spell every field), overridden in turn by --max-groundings.
func config() (adl.Config, error) {
	cfg := adl.DefaultConfig()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		var overrides map[string]interface{}
		if err := json.Unmarshal(raw, &overrides); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		if err := mapstructure.Decode(overrides, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	}

	cfg.MaxGroundingsPerSchema = maxGroundings
	return cfg, nil
}

func groundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ground",
		Short: "Ground the bundled blocks-world domain's actions against its initial state",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := scenario.Domain()
			problem := scenario.ThreeBlockProblem(d)
			s, err := adl.InitState(problem)
			if err != nil {
				return fmt.Errorf("init state: %w", err)
			}

			cfg, err := config()
			if err != nil {
				return err
			}
			instances, err := adl.GroundAllActions(d, s, cfg)
			if err != nil {
				log.Warn("grounding reported errors", "error", err)
			}
			log.Info("grounded actions", "count", len(instances))
			for _, ga := range instances {
				fmt.Println(ga.Term.String())
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether the bundled blocks-world goal holds in its initial state",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := scenario.Domain()
			problem := scenario.ThreeBlockProblem(d)
			s, err := adl.InitState(problem)
			if err != nil {
				return fmt.Errorf("init state: %w", err)
			}

			cfg, err := config()
			if err != nil {
				return err
			}
			ok, err := adl.Satisfy(d, s, []adl.Term{adl.GoalState(problem)}, cfg)
			if err != nil {
				return fmt.Errorf("satisfy: %w", err)
			}
			log.Info("goal check", "satisfied", ok)
			if !ok {
				fmt.Println("goal does not hold")
				return nil
			}
			fmt.Println("goal holds")
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bundled blocks-world demo plan to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := scenario.Domain()
			problem := scenario.ThreeBlockProblem(d)
			cfg, err := config()
			if err != nil {
				return err
			}

			s, err := adl.InitState(problem)
			if err != nil {
				return fmt.Errorf("init state: %w", err)
			}

			plan := []adl.Term{
				adl.Comp("pickup", adl.NewConst("c")),
				adl.Comp("stack", adl.NewConst("c"), adl.NewConst("a")),
			}
			for _, step := range plan {
				s, err = adl.Transition(d, s, step, cfg)
				if err != nil {
					return fmt.Errorf("transition %s: %w", step, err)
				}
				log.Info("applied", "step", step.String())
			}

			ok, err := adl.Satisfy(d, s, []adl.Term{adl.GoalState(problem)}, cfg)
			if err != nil {
				return fmt.Errorf("satisfy: %w", err)
			}
			if !ok {
				return fmt.Errorf("plan did not reach the goal")
			}
			fmt.Println("goal reached")
			return nil
		},
	}
}
