// Package resource bounds the resources used while loading sources:
// concurrent loads, bytes of source data held in memory and read throughput.
//
// A nil *Controller is valid and imposes no limits.
package resource
