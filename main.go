package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/comment-moments/config"
	"github.com/maastricht-university/comment-moments/logging"
)

var (
	cfgFile string
	conf    *cfg.Root
	log     *logrus.Logger
)

// flagKeys maps command-line flags onto configuration keys. A flag only
// overrides the file and environment when it was set.
var flagKeys = map[string]string{
	"log-level":   "pipeline.log_level",
	"log-format":  "pipeline.log_format",
	"addr":        "server.addr",
	"granularity": "analysis.granularity",
	"threshold":   "analysis.confidence_threshold",
	"concurrency": "analysis.concurrency",
	"policy":      "analysis.label_policy",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "moments",
	Short:         "comment-moments - find emotionally dominant moments in a video from its comments",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var opts []cfg.Option
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				opts = append(opts, cfg.WithFlag(key, f))
			}
		}

		c, err := cfg.Load(cfgFile, opts...)
		if err != nil {
			return err
		}
		conf = c
		log = logging.New(c.Pipeline.LogLvl, c.Pipeline.LogFormat, os.Stderr)
		log.WithFields(logrus.Fields{
			"name":    c.Pipeline.Name,
			"version": c.Pipeline.Version,
		}).Debug("configuration loaded")
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: config/$CONFIG_ENV/config.yaml or ./config.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")

	for _, c := range []*cobra.Command{serveCmd, analyzeCmd} {
		c.Flags().Int("granularity", 0, "bucket width in seconds")
		c.Flags().Float64("threshold", 0, "minimum classifier confidence (exclusive)")
		c.Flags().Int("concurrency", 0, "parallel classifier calls")
		c.Flags().String("policy", "", "label policy (top1, multi)")
	}
	serveCmd.Flags().String("addr", "", "listen address (default :8000)")

	analyzeCmd.Flags().IntVar(&analyzeOpts.maxResults, "max-results", 0, "comments to fetch (default analysis.max_comments)")
	analyzeCmd.Flags().StringVar(&analyzeOpts.comments, "comments", "", "read comments from a file (JSON array or one per line) instead of YouTube")
	analyzeCmd.Flags().StringVar(&analyzeOpts.format, "format", "json", "report format (json, yaml)")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.out, "out", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.publish, "publish", false, "send the timeline to the visualization service")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}
