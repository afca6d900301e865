package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/comment-moments/clients"
	"github.com/maastricht-university/comment-moments/orchestrator"
	"github.com/maastricht-university/comment-moments/server"
)

var analyzeOpts struct {
	maxResults int
	comments   string
	format     string
	out        string
	publish    bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		clf, cleanup, err := newClassifier(ctx, conf, log)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := orchestrator.NewPipeline(conf.Analysis, newCommentSource(conf), clf, log)
		if err != nil {
			return err
		}

		if !log.IsLevelEnabled(logrus.DebugLevel) {
			gin.SetMode(gin.ReleaseMode)
		}
		return server.NewServer(p, conf.Server, conf.Pipeline.Version, log).Start(ctx)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <video_id>",
	Short: "Analyze one video and print its emotional moments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		videoID := args[0]

		clf, cleanup, err := newClassifier(ctx, conf, log)
		if err != nil {
			return err
		}
		defer cleanup()

		var src clients.CommentSource
		if analyzeOpts.comments == "" {
			src = newCommentSource(conf)
		}
		p, err := orchestrator.NewPipeline(conf.Analysis, src, clf, log)
		if err != nil {
			return err
		}

		var moments []orchestrator.Moment
		if analyzeOpts.comments != "" {
			comments, err := readComments(analyzeOpts.comments)
			if err != nil {
				return err
			}
			moments, err = p.Analyze(ctx, comments)
			if err != nil {
				return err
			}
		} else {
			moments, err = p.Run(ctx, videoID, analyzeOpts.maxResults)
			if err != nil {
				return err
			}
		}

		report := orchestrator.NewReport(videoID, moments)
		if analyzeOpts.out != "" {
			if err := orchestrator.WriteReportFile(analyzeOpts.out, report, analyzeOpts.format); err != nil {
				return err
			}
			log.WithField("path", analyzeOpts.out).Info("report written")
		} else if err := orchestrator.WriteReport(os.Stdout, report, analyzeOpts.format); err != nil {
			return err
		}

		if analyzeOpts.publish {
			viz := conf.Services.Visualization
			if viz.URL == "" {
				return errors.New("--publish needs services.visualization.url")
			}
			resp, err := newHTTP(viz.Timeout, viz.Retries).GenerateTimeline(ctx, viz.URL, report.Timeline())
			if err != nil {
				return fmt.Errorf("publish timeline: %w", err)
			}
			log.WithField("path", resp.Path).Info("timeline published")
		}
		return nil
	},
}
