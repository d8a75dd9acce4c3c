package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	tuma "github.com/tuma-exchange/client-go"
)

var (
	gatewayList    string
	credentialFile string
	identity       string
	chargeGateURL  string
	timeout        time.Duration
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "tuma",
	Short: "Send and receive end-to-end encrypted documents over permanent storage",
	Long: `tuma exchanges documents between two identities. Every document is
encrypted client-side before upload; the storage network only ever sees
ciphertext plus the metadata tags needed to find and decrypt it again.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// A .env next to the binary is a convenience, not a requirement.
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&gatewayList, "gateways", os.Getenv("TUMA_GATEWAYS"), "Comma-separated gateway hosts (default: built-in list)")
	rootCmd.PersistentFlags().StringVarP(&credentialFile, "credential", "c", os.Getenv("TUMA_CREDENTIAL_FILE"), "Path to the storage credential key file")
	rootCmd.PersistentFlags().StringVar(&identity, "identity", os.Getenv("TUMA_IDENTITY"), "Identity acting in this command")
	rootCmd.PersistentFlags().StringVar(&chargeGateURL, "charge-gate", os.Getenv("TUMA_CHARGE_GATE"), "Base URL of the charge-status service (optional)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Per-request HTTP timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// newClient assembles a client from the persistent flags.
func newClient() (*tuma.Client, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	opts := []tuma.Option{
		tuma.WithTimeout(timeout),
		tuma.WithLogger(logger),
	}
	if gatewayList != "" {
		var hosts []string
		for _, h := range strings.Split(gatewayList, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		opts = append(opts, tuma.WithGateways(hosts...))
	}
	if credentialFile != "" {
		opts = append(opts, tuma.WithCredentialFile(credentialFile))
	}
	if chargeGateURL != "" {
		opts = append(opts, tuma.WithAccessGate(tuma.NewChargeGate(chargeGateURL)))
	}
	return tuma.New(opts...)
}

func requireIdentity() (string, error) {
	if identity == "" {
		return "", fmt.Errorf("--identity (or TUMA_IDENTITY) is required")
	}
	return identity, nil
}
