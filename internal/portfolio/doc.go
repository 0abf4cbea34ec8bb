// Package portfolio holds the pure computations behind the dashboard: counts,
// banner selection, balance history, account ordering and the recent activity
// list. Nothing in here performs I/O; callers pass a snapshot of the workspace
// and get back values ready to be serialized.
package portfolio
