package collector

import (
	"flag"
	"time"

	"github.com/zachfi/zkit/pkg/util"

	"github.com/zachfi/streamstats/pkg/infomaniak"
	"github.com/zachfi/streamstats/pkg/ipapi"
	"github.com/zachfi/streamstats/pkg/telemetry"
)

const defaultInterval = time.Minute

type Config struct {
	Identity       string        `yaml:"identity,omitempty"`
	Secret         string        `yaml:"secret,omitempty"`
	Bitrate        string        `yaml:"bitrate,omitempty"`
	Codec          string        `yaml:"codec,omitempty"`
	SortByDuration bool          `yaml:"sort-by-duration,omitempty"`
	Geolocate      bool          `yaml:"geolocate,omitempty"`
	Interval       time.Duration `yaml:"interval,omitempty"` // time between snapshots, each one a fresh run

	Platform    infomaniak.Config `yaml:"platform,omitempty"`
	Geolocation ipapi.Config      `yaml:"geolocation,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Identity, util.PrefixConfig(prefix, "identity"), "", "Radio account login, also the mount name prefix")
	f.StringVar(&cfg.Secret, util.PrefixConfig(prefix, "secret"), "", "Radio account password")
	f.StringVar(&cfg.Bitrate, util.PrefixConfig(prefix, "bitrate"), "", "Stream bitrate as used in the mount name, eg. 128")
	f.StringVar(&cfg.Codec, util.PrefixConfig(prefix, "codec"), "", "Stream codec as used in the mount name, eg. mp3 or aac")
	f.BoolVar(&cfg.SortByDuration, util.PrefixConfig(prefix, "sort-by-duration"), false, "Order listeners by connection duration, longest first")
	f.BoolVar(&cfg.Geolocate, util.PrefixConfig(prefix, "geolocate"), false, "Geolocate listeners, at most 150 lookups per snapshot")
	f.DurationVar(&cfg.Interval, util.PrefixConfig(prefix, "interval"), defaultInterval, "Time between snapshots")

	cfg.Platform.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "platform"), f)
	cfg.Geolocation.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "geolocation"), f)
}

func (cfg *Config) credentials() telemetry.Credentials {
	return telemetry.Credentials{
		Identity: cfg.Identity,
		Secret:   cfg.Secret,
		Bitrate:  cfg.Bitrate,
		Codec:    cfg.Codec,
	}
}

func (cfg *Config) options() telemetry.Options {
	return telemetry.Options{
		SortByDuration: cfg.SortByDuration,
		Geolocate:      cfg.Geolocate,
	}
}

// Validate reports every missing stream credential.
func (cfg *Config) Validate() error {
	return cfg.credentials().Validate()
}
