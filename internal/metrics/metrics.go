// Package metrics exposes Prometheus collectors for the directory service.
package metrics

// Namespace prefixes every collector of this service.
const Namespace = "directory"
