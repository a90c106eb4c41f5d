package main

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zachfi/streamstats/pkg/infomaniak"
	"github.com/zachfi/streamstats/pkg/ipapi"
	"github.com/zachfi/streamstats/pkg/telemetry"
)

const envPrefix = "RADIOSTAT"

func snapshotCmd(logger func() *slog.Logger) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Take one snapshot of stream health, audience and listeners",
		Long: `Take one snapshot of the stream and print it as JSON.

Every flag can also be set through the environment, eg. RADIOSTAT_SECRET
for --secret or RADIOSTAT_PLATFORM_URL for --platform-url.

Examples:
  # Listeners sorted by connection time
  radiostat snapshot --identity radio1 --bitrate 128 --codec mp3 --sort-by-duration

  # With geolocation, paced for the ip-api.com free tier
  RADIOSTAT_SECRET=... radiostat snapshot --identity radio1 --bitrate 128 --codec mp3 \
    --geolocate --geolocation-rate 0.75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := telemetry.Credentials{
				Identity: v.GetString("identity"),
				Secret:   v.GetString("secret"),
				Bitrate:  v.GetString("bitrate"),
				Codec:    v.GetString("codec"),
			}
			opts := telemetry.Options{
				SortByDuration: v.GetBool("sort-by-duration"),
				Geolocate:      v.GetBool("geolocate"),
			}

			platform := infomaniak.NewClient(infomaniak.Config{
				URL:     v.GetString("platform-url"),
				Timeout: v.GetDuration("timeout"),
			}, creds.Identity, creds.Secret)

			var geo telemetry.Geolocator
			if opts.Geolocate {
				geo = ipapi.NewClient(ipapi.Config{
					URL:           v.GetString("geolocation-url"),
					Timeout:       v.GetDuration("timeout"),
					RatePerSecond: v.GetFloat64("geolocation-rate"),
				})
			}

			agg, err := telemetry.New(creds, opts, platform, geo, logger())
			if err != nil {
				return err
			}

			snap, err := agg.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	f := cmd.Flags()
	f.String("identity", "", "radio account login, also the mount name prefix")
	f.String("secret", "", "radio account password")
	f.String("bitrate", "", "stream bitrate as used in the mount name, eg. 128")
	f.String("codec", "", "stream codec as used in the mount name, eg. mp3")
	f.Bool("sort-by-duration", false, "order listeners by connection duration, longest first")
	f.Bool("geolocate", false, "geolocate listeners, at most 150 lookups")
	f.String("platform-url", infomaniak.DefaultURL, "base URL of the statistics platform")
	f.String("geolocation-url", ipapi.DefaultURL, "base URL of the geolocation service")
	f.Float64("geolocation-rate", 0, "geolocation lookups per second, 0 disables pacing")
	f.Duration("timeout", 0, "per request timeout, 0 uses the client defaults")

	_ = v.BindPFlags(f)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}
