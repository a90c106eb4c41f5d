package telemetry

import (
	"strings"

	"github.com/zachfi/streamstats/pkg/infomaniak"
)

// Credentials identify the radio account and the stream to observe.
type Credentials struct {
	Identity string
	Secret   string
	Bitrate  string
	Codec    string
}

// Validate reports all missing fields at once, before any network activity.
func (c Credentials) Validate() error {
	errs := &ValidationErrors{}

	check := func(v string, err error) {
		if strings.TrimSpace(v) == "" {
			errs.Errs = append(errs.Errs, err)
		}
	}
	check(c.Identity, ErrMissingIdentity)
	check(c.Secret, ErrMissingSecret)
	check(c.Bitrate, ErrMissingBitrate)
	check(c.Codec, ErrMissingCodec)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (c Credentials) mount(backup bool) infomaniak.Mount {
	return infomaniak.Mount{
		Identity: c.Identity,
		Bitrate:  c.Bitrate,
		Codec:    c.Codec,
		Backup:   backup,
	}
}

type Options struct {
	// SortByDuration orders listeners by connection duration, longest first.
	SortByDuration bool
	// Geolocate attaches a location to listeners while the lookup budget lasts.
	Geolocate bool
}
