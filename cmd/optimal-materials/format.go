package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
	"github.com/netscript-tools/material-optimizer/internal/config"
	"github.com/netscript-tools/material-optimizer/pkg/core"
)

// industryInfo is the structured form of one catalog entry.
type industryInfo struct {
	Name    string             `json:"name" yaml:"name"`
	Factors map[string]float64 `json:"factors" yaml:"factors"`
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeReports(w io.Writer, format string, reports []v1alpha1.AllocationReport) error {
	if format != config.OutputText {
		return encode(w, format, reports)
	}
	for _, r := range reports {
		var err error
		if r.Failed() {
			_, err = fmt.Fprintf(w, "%s: error: %s\n", r.Division, r.Error)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", r.Division, r.Allocation().String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeIndustries(w io.Writer, format string) error {
	if format == config.OutputText {
		for _, ind := range core.Industries() {
			if _, err := fmt.Fprintln(w, ind.String()); err != nil {
				return err
			}
		}
		return nil
	}

	infos := make([]industryInfo, 0, len(core.Industries()))
	for _, ind := range core.Industries() {
		profile, err := ind.Profile()
		if err != nil {
			return err
		}
		factors := make(map[string]float64, core.NumMaterials)
		for _, m := range core.Materials() {
			factors[m.String()] = profile.Factor(m)
		}
		infos = append(infos, industryInfo{Name: ind.String(), Factors: factors})
	}
	return encode(w, format, infos)
}
