// Package report renders solar positions, day traces and events as text tables
// or JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/geo"
)

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  string  `json:"latitude"`
	Longitude string  `json:"longitude"`
	LatDeg    float64 `json:"lat_deg"`
	LonDeg    float64 `json:"lon_deg"`
}

// PositionExport is one evaluated observation.
type PositionExport struct {
	Observer    ObserverExport `json:"observer"`
	CivilTime   string         `json:"civil_time"`
	UTCOffset   string         `json:"utc_offset"`
	UT          time.Time      `json:"ut"`
	AltitudeDeg float64        `json:"altitude_deg"`
	AzimuthDeg  float64        `json:"azimuth_deg"`
	Tier        string         `json:"tier"`
}

// ExportObserver converts an observer location to its JSON form.
func ExportObserver(obs geo.ObserverLocation) ObserverExport {
	return ObserverExport{
		Name:      obs.Name,
		Latitude:  obs.Latitude.String(),
		Longitude: obs.Longitude.String(),
		LatDeg:    obs.LatDeg(),
		LonDeg:    obs.LonDeg(),
	}
}

// ExportPosition builds the JSON form of a single observation.
func ExportPosition(obs geo.ObserverLocation, when geo.Instant, utcOffsetSeconds int, pos astro.HorizontalPosition) *PositionExport {
	return &PositionExport{
		Observer:    ExportObserver(obs),
		CivilTime:   when.Civil(utcOffsetSeconds).Format(geo.TimestampLayout),
		UTCOffset:   geo.FormatOffset(utcOffsetSeconds),
		UT:          when.UT(),
		AltitudeDeg: pos.AltitudeDeg,
		AzimuthDeg:  pos.AzimuthDeg,
		Tier:        astro.GetAltitudeTier(pos.AltitudeDeg).String(),
	}
}

// WriteJSON writes the observation as indented JSON.
func (p *PositionExport) WriteJSON(w io.Writer) error {
	return writeJSON(w, p)
}

// WritePosition prints altitude and azimuth rounded to two decimals.
func WritePosition(w io.Writer, pos astro.HorizontalPosition) error {
	_, err := fmt.Fprintf(w, "Solar altitude: %.2f degrees\nSolar azimuth: %.2f degrees\n",
		pos.AltitudeDeg, pos.AzimuthDeg)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
