// Package config provides configuration management for the material optimizer.
//
// This package handles loading and validation of the tool's settings and of
// plan files describing batches of divisions to allocate.
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (MATOPT_LOG_LEVEL, MATOPT_WORKERS, ...)
//  3. Config file named by --config (YAML, JSON or TOML)
//  4. Default values (lowest priority)
//
// Example usage:
//
//	v := viper.New()
//	config.SetDefaults(v)
//	_ = v.BindPFlags(cmd.Flags())
//	cfg, err := config.Load(v)
//	if err != nil {
//	    return err
//	}
//
// Plan files map an entry name to a request:
//
//	software:
//	  industry: Software
//	  size: 400
//	  storageFraction: 0.5
//	chem:
//	  industry: Chemical
//	  size: 1200
//
// Configuration Validation:
//
// All configuration values are validated on load and every violation is
// reported in a single aggregate error. Invalid plan entries are skipped
// with a log line rather than failing the whole plan.
package config
