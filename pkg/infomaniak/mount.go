package infomaniak

// Mount identifies a broadcast endpoint, eg. radio1-128.mp3 or its backup
// radio1-128-bak.mp3.
type Mount struct {
	Identity string
	Bitrate  string
	Codec    string
	Backup   bool
}

func (m Mount) String() string {
	name := m.Identity + "-" + m.Bitrate
	if m.Backup {
		name += "-bak"
	}
	return name + "." + m.Codec
}
