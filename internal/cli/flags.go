package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose (debug) logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ReportCommand — aggregate hours for a half-open date range and
// render the report.
type ReportCommand struct {
	Endpoint        string `long:"endpoint" description:"FogBugz API endpoint, e.g. https://example.fogbugz.com/api.asp"`
	Email           string `long:"email" description:"Account email for logon"`
	Password        string `long:"password" description:"Account password for logon"`
	Output          string `long:"output" short:"o" description:"Write the report to this file instead of stdout"`
	Detailed        bool   `long:"detailed" description:"One row per time entry instead of the per-developer summary"`
	Workbook        bool   `long:"xlsx" description:"Write a two-sheet spreadsheet (requires --output)"`
	Prefetch        bool   `long:"prefetch" description:"Fetch every bug up front in a single query"`
	CountUnassigned bool   `long:"count-unassigned" description:"Credit unassigned resolution hours to nobody instead of dropping them"`

	Args struct {
		Start string `positional-arg-name:"start" required:"yes" description:"Range start, ISO-8601 (inclusive)"`
		End   string `positional-arg-name:"end" required:"yes" description:"Range end, ISO-8601 (exclusive)"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}
