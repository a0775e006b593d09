// Command cronwatch checks how long ago a CMS's internal cron last ran and
// opens a tracking ticket when that age exceeds a configured threshold.
//
// It is designed to run unattended from a periodic scheduler, once per
// interval, with no persistent process. Subcommands:
//
//	check        run one staleness check (the scheduled entry point)
//	status       show the current verdict without side effects
//	history      list recent check runs
//	test-ticket  verify tracker credentials end to end
//	config       init / validate / show configuration
package main
