// Package environment names the deployment environments calckit runs in and
// normalises the short aliases operators tend to put in configuration
// ("dev", "stage", "prod").
package environment
