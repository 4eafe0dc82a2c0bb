package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fogreport/internal/config"
	"fogreport/internal/entity"
	"fogreport/internal/fogbugz"
	"fogreport/internal/logger"
	"fogreport/internal/report"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	cfg, err := c.resolveConfig()
	if err != nil {
		return err
	}

	start, end, err := parseRange(c.Args.Start, c.Args.End)
	if err != nil {
		return err
	}

	if cfg.API.Endpoint == "" || cfg.API.Email == "" || cfg.API.Password == "" {
		return errors.New("endpoint, email and password are required (via flags, environment, or config file)")
	}

	log := logger.New(cfg.Logging)

	client := fogbugz.NewClient(cfg.API, log)
	if err := client.Logon(); err != nil {
		return err
	}
	defer client.Logoff()

	agg := report.NewAggregator(client, entity.NewPeople(client), entity.NewBugs(client), cfg.Report, log)
	res, err := agg.Run(start, end)
	if err != nil {
		return err
	}

	return c.render(cfg, res)
}

// resolveConfig assembles the effective configuration: defaults, then
// the optional config file, then environment, then CLI flags.
func (c *ReportCommand) resolveConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if c.globals != nil && c.globals.Config != "" {
		cfg, err = config.Load(c.globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	config.ApplyEnv(cfg)
	c.applyFlags(cfg)
	return cfg, nil
}

// applyFlags overlays set CLI flags onto cfg; flags win over every
// other source. Boolean flags only ever turn behavior on.
func (c *ReportCommand) applyFlags(cfg *config.Config) {
	if c.Endpoint != "" {
		cfg.API.Endpoint = c.Endpoint
	}
	if c.Email != "" {
		cfg.API.Email = c.Email
	}
	if c.Password != "" {
		cfg.API.Password = c.Password
	}
	if c.Output != "" {
		cfg.Output.Path = c.Output
	}
	if c.Detailed {
		cfg.Output.Detailed = true
	}
	if c.Workbook {
		cfg.Output.Workbook = true
	}
	if c.Prefetch {
		cfg.Report.Prefetch = true
	}
	if c.CountUnassigned {
		cfg.Report.CountUnassigned = true
	}
	if c.globals != nil && c.globals.Verbose {
		cfg.Logging.Level = "debug"
	}
}

// render writes the aggregation result in the configured shape.
func (c *ReportCommand) render(cfg *config.Config, res *report.Result) error {
	if c.globals != nil && c.globals.JSON {
		return writeJSON(os.Stdout, res)
	}

	if cfg.Output.Workbook {
		if cfg.Output.Path == "" {
			return errors.New("--xlsx requires --output")
		}
		return report.WriteWorkbook(cfg.Output.Path, res, cfg.Output.Detailed)
	}

	var w io.Writer = os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if cfg.Output.Detailed {
		return report.WriteDetails(w, res)
	}
	return report.WriteSummary(w, res)
}

// jsonReport is the JSON output structure for the report command.
type jsonReport struct {
	Ledger        report.Ledger `json:"ledger"`
	Tags          []string      `json:"tags"`
	Anomalies     []int         `json:"anomalies"`
	FollowUpQuery string        `json:"follow_up_query,omitempty"`
}

func writeJSON(w io.Writer, res *report.Result) error {
	out := jsonReport{
		Ledger:    res.Ledger,
		Tags:      res.TagList(),
		Anomalies: res.AnomalyList(),
	}
	if len(out.Anomalies) > 0 {
		out.FollowUpQuery = report.AnomalyQuery(out.Anomalies)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
