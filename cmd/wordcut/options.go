package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
)

type optionsOutput struct {
	Options  []string         `json:"options"`
	Profiles []config.Profile `json:"profiles"`
}

func newOptionsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List cleaning options and profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = v.BindPFlag("profiles_file", cmd.Flags().Lookup("profiles-file"))
			profiles, err := loadProfiles(v)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				data, err := json.MarshalIndent(optionsOutput{
					Options:  cleaner.OptionNames(),
					Profiles: profiles.List(),
				}, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return writeOptionsText(cmd, profiles)
		},
	}
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().String("profiles-file", "", "profiles file (default: the config file)")
	return cmd
}

func writeOptionsText(cmd *cobra.Command, profiles config.Profiles) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "OPTION\tFLAG")
	for _, name := range cleaner.OptionNames() {
		fmt.Fprintf(tw, "%s\t--%s\n", name, optionFlag(name))
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PROFILE\tDESCRIPTION\tENABLED")
	for _, p := range profiles.List() {
		enabled := strings.Join(p.Options.Enabled(), ",")
		if enabled == "" {
			enabled = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Description, enabled)
	}
	return tw.Flush()
}
