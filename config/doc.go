// Package config loads newsclust configuration with Viper.
//
// Values come from, in increasing precedence: built-in defaults, a YAML,
// TOML or JSON file, and NEWSCLUST_* environment variables (nested keys
// joined with "_", e.g. NEWSCLUST_CLUSTER_K=4).
//
//	cluster:
//	  k: 4
//	  max_iterations: 100
//	  tolerance: 0.0001
//	sources:
//	  - name: bbc.csv
//	    label: BBC
//	store:
//	  backend: local
//	  path: ./data
package config
