// Package fanout implements the fanout command: it reads a YAML plan of
// simulated jobs, launches each one on its own async worker and waits for all
// of them under one shared timeout, printing a per-job report.
//
// Configuration comes from FANOUT_* environment variables, optionally seeded
// from .env files, and from command flags.
package fanout
