package infomaniak

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Stats holds the audience counters of the first source in stats.xml.
type Stats struct {
	ListenerPeak int
	Listeners    int
}

// Listener is one roster entry from the media stats document.
type Listener struct {
	IP        string
	Connected int64 // seconds
}

type statsDocument struct {
	Sources []struct {
		Mount        string `xml:"mount,attr"`
		ListenerPeak int    `xml:"listener_peak"`
		Listeners    int    `xml:"listeners"`
	} `xml:"source"`
}

type rosterDocument struct {
	Sources []struct {
		Listeners []struct {
			IP        string `xml:"IP"`
			Connected int64  `xml:"Connected"`
		} `xml:"listener"`
	} `xml:"source"`
}

func parseStats(r io.Reader) (*Stats, error) {
	var doc statsDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding stats document: %w", err)
	}

	if len(doc.Sources) == 0 {
		return nil, ErrNoSource
	}

	src := doc.Sources[0]
	if src.ListenerPeak < 0 || src.Listeners < 0 {
		return nil, fmt.Errorf("negative listener count in stats document (peak %d, current %d)", src.ListenerPeak, src.Listeners)
	}

	return &Stats{ListenerPeak: src.ListenerPeak, Listeners: src.Listeners}, nil
}

// parseRoster returns the listeners of the first source in document order.
// A document without a source is an empty roster.
func parseRoster(r io.Reader) ([]Listener, error) {
	var doc rosterDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding roster document: %w", err)
	}

	listeners := []Listener{}
	if len(doc.Sources) == 0 {
		return listeners, nil
	}

	for _, l := range doc.Sources[0].Listeners {
		if l.Connected < 0 {
			return nil, fmt.Errorf("negative connection duration %d for %s", l.Connected, l.IP)
		}
		listeners = append(listeners, Listener{IP: l.IP, Connected: l.Connected})
	}

	return listeners, nil
}
