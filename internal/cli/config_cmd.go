package cli

import (
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const redacted = "[REDACTED]"

func newConfigCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.loadConfig(cmd)
			if err != nil {
				return err
			}

			if cfg.Firebase.CredentialsJSON != "" {
				cfg.Firebase.CredentialsJSON = redacted
			}
			if cfg.Database.URL != "" {
				cfg.Database.URL = redactURL(cfg.Database.URL)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// redactURL masks the password of a database URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	return u.Redacted()
}
