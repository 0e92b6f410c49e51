// Command cloudcheck smoke-tests the configured AWS resources: it lists
// stored calculations and exported reports and can publish a test alert.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/cloud"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
)

// checker runs named checks and remembers which ones failed.
type checker struct {
	failed []string
}

func (c *checker) check(name string, fn func() error) {
	if err := fn(); err != nil {
		c.failed = append(c.failed, name)
		log.Error().Err(err).Str("check", name).Msg("failed")
		return
	}
	log.Info().Str("check", name).Msg("ok")
}

func (c *checker) err() error {
	if len(c.failed) == 0 {
		return nil
	}
	return fmt.Errorf("checks failed: %s", strings.Join(c.failed, ", "))
}

type options struct {
	sendAlert bool
	prefix    string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "cloudcheck",
		Short:         "Smoke-test the configured DynamoDB table, S3 bucket and SNS topic",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if err := logging.Setup(config.LogLevel(), config.LogFormat()); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
			defer cancel()
			return run(ctx, cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().BoolVar(&o.sendAlert, "send-alert", false, "publish a test message to the SNS topic")
	cmd.Flags().StringVar(&o.prefix, "prefix", "reports/", "S3 key prefix to list")
	cmd.Flags().DurationVar(&o.timeout, "timeout", time.Minute, "overall deadline for the checks")
	return cmd
}

func run(ctx context.Context, out io.Writer, o options) error {
	cfg, err := cloud.LoadConfig(ctx, config.AWSRegion())
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}

	var c checker
	if table := config.DynamoDBTable(); table != "" {
		c.check("dynamodb", func() error {
			items, err := cloud.NewDynamoDBClient(cfg, table).ListCalculations(ctx, domain.ListFilter{Limit: 5})
			if err != nil {
				return err
			}
			for _, calc := range items {
				fmt.Fprintf(out, "%s  %-14s  compliant=%t\n", calc.CreatedAt.Format(time.RFC3339), calc.Kind, calc.Result.Compliant)
			}
			return nil
		})
	}

	if bucket := config.S3Bucket(); bucket != "" {
		c.check("s3", func() error {
			keys, err := cloud.NewS3Client(cfg, bucket).ListReports(ctx, o.prefix)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d reports under s3://%s/%s\n", len(keys), bucket, o.prefix)
			return nil
		})
	}

	if arn := config.SNSTopicArn(); arn != "" && o.sendAlert {
		c.check("sns", func() error {
			return cloud.NewSNSClient(cfg, arn).SendAlert(ctx, "wirecalc test alert", "cloudcheck connectivity test")
		})
	}
	return c.err()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("cloudcheck")
		os.Exit(1)
	}
}
