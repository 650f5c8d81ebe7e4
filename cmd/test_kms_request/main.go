// Command test_kms_request runs the bundled AWS Signature Version 4
// conformance corpus against the request builder. It exits 0 when
// every test passes and non-zero on the first mismatch, printing the
// diff with the first mismatching offset to stderr.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jayantasamaddar/go-kmsrequest/suite"
)

var suiteDir string

var rootCmd = &cobra.Command{
	Use:          "test_kms_request [TEST_NAME]",
	Short:        "Run the AWS SigV4 conformance test suite",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected := ""
		if len(args) == 1 {
			selected = args[0]
		}

		logger := logrus.New()
		logger.SetOutput(cmd.OutOrStdout())

		runner := &suite.Runner{
			Fs:     afero.NewOsFs(),
			Dir:    suiteDir,
			Logger: logger,
		}

		ran, err := runner.Run(selected)
		if err != nil {
			return err
		}
		if !ran {
			return fmt.Errorf("No such test: %q", selected)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(
		&suiteDir, "suite-dir", "aws-sig-v4-test-suite", "directory holding the conformance corpus")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
