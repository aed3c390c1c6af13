/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/log"
)

var cfgFile string
var outputFormat string
var datasetMode bool
var referenceValues []string
var showDebug bool
var suppressWarnings bool

// options is resolved from flags, environment and config file before any command runs
var options appmodel.Options

const (
	OUTPUT_TABLE       = "table"
	OUTPUT_YAML        = "yaml"
	OUTPUT_PLAIN       = "plain"
	OUTPUT_INTERACTIVE = "interactive"
)

const ENV_PREFIX = "DYNROUND"

// constant table - format types, keep in sync with OUTPUT_xxx constants above
func getOutputFormats() []string {
	return []string{OUTPUT_TABLE, OUTPUT_YAML, OUTPUT_PLAIN, OUTPUT_INTERACTIVE}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dynround [[<label>=]<value>...]",
	Short: "Round numbers relative to their order of magnitude",
	Long: `dynround rounds numbers to a precision that follows their order of magnitude,
so that 87654321 becomes 90000000 and 4321 becomes 4500.

Values are taken from the command line or, if there are none, one per line from
standard input. Several values are rounded together as a data set: the values of
the largest magnitude keep more precision than the rest. A value may carry a
label, as in "BigQuery=983321.11".`,
	Example: `  dynround 87654321
  dynround "Compute Engine=4428910.41" "BigQuery=983321.11" "Cloud Storage=42109.45"
  dynround --reference '$4,428,910' --reference 42109 983321`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: validateFlags,
	RunE:              runRound,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().SortFlags = false // also requires Flags().SortFlag = false
	rootCmd.Flags().SortFlags = false           // also requires PersistentFlags().SortFlag = false

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dynround.yaml)")

	rootCmd.PersistentFlags().Float64("offset", appmodel.DEFAULT_OFFSET, "Offset for values rounded on their own")
	rootCmd.PersistentFlags().Float64("offset-top", appmodel.DEFAULT_OFFSET_TOP, "Offset for the top magnitude levels of a data set")
	rootCmd.PersistentFlags().Float64("offset-other", appmodel.DEFAULT_OFFSET_OTHER, "Offset for the rest of a data set")
	rootCmd.PersistentFlags().Int("num-top", appmodel.DEFAULT_NUM_TOP, "Number of magnitude levels that count as top")
	rootCmd.PersistentFlags().String("policy", "", "What to do with non-numeric values (fail-fast|pass-through)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OUTPUT_TABLE, fmt.Sprintf("Output format (%v)", strings.Join(getOutputFormats(), "|")))
	for _, key := range []string{"offset", "offset-top", "offset-other", "num-top", "policy", "output"} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)))
	}

	rootCmd.PersistentFlags().BoolVar(&showDebug, "debug", false, "Display tracing/debug information to stderr")
	rootCmd.PersistentFlags().BoolVarP(&suppressWarnings, "quiet", "q", false, "Suppress warning and info level messages")

	rootCmd.Flags().BoolVar(&datasetMode, "dataset", false, "Round the values as one data set (default when there is more than one value)")
	rootCmd.Flags().StringArrayVar(&referenceValues, "reference", nil, "Reference value to round against instead of the values themselves (repeatable)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".dynround" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dynround")
	}

	// DYNROUND_OFFSET_TOP etc.
	viper.SetEnvPrefix(ENV_PREFIX)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Tracef("Using config file: %v", viper.ConfigFileUsed())
	}
}

// optionsFromConfig builds rounding options from viper. Only keys that were
// explicitly set (flag, environment or config file) are carried over, so
// that unset ones keep resolving to their defaults.
func optionsFromConfig(v *viper.Viper) (appmodel.Options, error) {
	var opts appmodel.Options
	var err error

	if v.IsSet("offset") {
		opts.Offset = appmodel.Float(v.GetFloat64("offset"))
	}
	if v.IsSet("offset-top") {
		opts.OffsetTop = appmodel.Float(v.GetFloat64("offset-top"))
	}
	if v.IsSet("offset-other") {
		opts.OffsetOther = appmodel.Float(v.GetFloat64("offset-other"))
	}
	if v.IsSet("num-top") {
		opts.NumTop = appmodel.Int(v.GetInt("num-top"))
	}
	if opts.Policy, err = appmodel.ParsePolicy(v.GetString("policy")); err != nil {
		return opts, fmt.Errorf("--policy: %w", err)
	}

	return opts, nil
}

func checkOutputFormat(format string) error {
	for _, f := range getOutputFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("--output format must be one of %v", getOutputFormats())
}

func validateFlags(cmd *cobra.Command, args []string) error {
	var err error

	// check flag dependencies
	if suppressWarnings && showDebug {
		return fmt.Errorf("--quiet and --debug flags cannot be combined")
	}
	log.SetupLogLevel(showDebug, suppressWarnings)
	log.SetupFormatter(showDebug)

	// output may come from the config file as well
	outputFormat = viper.GetString("output")
	if err = checkOutputFormat(outputFormat); err != nil {
		return err
	}

	options, err = optionsFromConfig(viper.GetViper())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"offset":       options.ResolvedOffset(),
		"offset_top":   options.ResolvedOffsetTop(),
		"offset_other": options.ResolvedOffsetOther(),
		"num_top":      options.ResolvedNumTop(),
		"policy":       options.Policy,
	}).Trace("rounding options")
	return nil
}
