package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/observability"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/version"
)

var doctorFlags struct {
	json bool
}

type checkFunc func(ctx context.Context) observability.Health

func (f checkFunc) CheckHealth(ctx context.Context) observability.Health { return f(ctx) }

func chromeCheck(context.Context) observability.Health {
	h := observability.Health{Name: "chrome"}
	path, err := table.FindChrome()
	if err != nil {
		h.Status = observability.HealthStatusDegraded
		h.Message = "PNG and PDF export unavailable: " + err.Error()
		return h
	}
	h.Status = observability.HealthStatusUp
	h.Details = map[string]string{"path": path}
	return h
}

func telemetryCheck(cfg observability.Config) checkFunc {
	return func(context.Context) observability.Health {
		h := observability.Health{Name: "telemetry", Status: observability.HealthStatusUp}
		if !cfg.Enabled {
			h.Message = "disabled"
			return h
		}
		h.Details = map[string]string{"endpoint": cfg.Endpoint}
		return h
	}
}

func newDoctorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report the health of export, email and telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.mailClient()
			if err != nil {
				return err
			}
			health := observability.NewServiceHealth(a.cfg.Name, version.Short()).
				Check(cmd.Context(), checkFunc(chromeCheck), client, telemetryCheck(a.cfg.Telemetry))
			if err := printHealth(cmd, health); err != nil {
				return err
			}
			if health.Status == observability.HealthStatusDown {
				return fmt.Errorf("%s is down", health.Service)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doctorFlags.json, "json", false, "print JSON")
	return cmd
}

func printHealth(cmd *cobra.Command, h *observability.ServiceHealth) error {
	out := cmd.OutOrStdout()
	if doctorFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(h)
	}
	fmt.Fprintf(out, "%s %s: %s\n", h.Service, h.Version, h.Status)
	for _, c := range h.Components {
		line := fmt.Sprintf("  %-10s %s", c.Name, c.Status)
		if c.Message != "" {
			line += "  " + c.Message
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
