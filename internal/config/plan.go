package config

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/netscript-tools/material-optimizer/api/v1alpha1"
	"github.com/netscript-tools/material-optimizer/internal/logging"
)

// ParsePlan parses a plan file into allocation requests.
// The plan format is a YAML mapping:
//   - "<entry-key>": an AllocationRequest (industry, size, optional storageFraction and division)
//
// Entries are processed in sorted key order. An entry that cannot be decoded
// or fails validation is logged and skipped. An entry without a division is
// labelled with its key. When two entries name the same division, the first
// key wins.
func ParsePlan(ctx context.Context, data []byte) ([]v1alpha1.AllocationRequest, error) {
	logger := logging.FromContext(ctx)

	var entries map[string]yaml.Node
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("plan must be a mapping of entry name to request: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]v1alpha1.AllocationRequest, 0, len(keys))
	divisionToKey := make(map[string]string)

	for _, key := range keys {
		node := entries[key]

		var req v1alpha1.AllocationRequest
		if err := node.Decode(&req); err != nil {
			logger.Info("Failed to parse plan entry, skipping",
				"key", key,
				"error", err.Error())
			continue
		}

		if err := req.Validate(); err != nil {
			logger.Info("Invalid plan entry, skipping",
				"key", key,
				"error", err.Error())
			continue
		}

		if req.Division == "" {
			req.Division = key
		}

		if winningKey, exists := divisionToKey[req.Division]; exists {
			logger.Info("Duplicate division found in plan - first key wins",
				"division", req.Division,
				"winningKey", winningKey,
				"duplicateKey", key)
			continue
		}
		divisionToKey[req.Division] = key

		out = append(out, req)
	}

	logger.V(logging.DEBUG).Info("Parsed plan",
		"entries", len(entries),
		"requests", len(out))

	return out, nil
}

// LoadPlanFile reads and parses the plan file at path.
func LoadPlanFile(ctx context.Context, path string) ([]v1alpha1.AllocationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	reqs, err := ParsePlan(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parsing plan file %s: %w", path, err)
	}
	return reqs, nil
}
