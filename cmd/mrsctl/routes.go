package main

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/internal/mrs"
	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/navigation"
	"github.com/motech/mrs/pkg/pagination"
	"github.com/motech/mrs/pkg/routes"
	"github.com/motech/mrs/pkg/web"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the app view routes and API endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("config")
			appBase, apiBase := basePaths(dir)

			out := cmd.OutOrStdout()
			if err := writeViewRoutes(out, appBase); err != nil {
				return err
			}
			io.WriteString(out, "\n")
			writeAPIRoutes(out, apiBase)
			return nil
		},
	}
}

// basePaths falls back to the defaults when no config is readable, so the
// listing works without a database.
func basePaths(dir string) (string, string) {
	cfg, err := config.Load(dir)
	if err != nil {
		return "/app", "/api"
	}
	return cfg.App.BasePath, cfg.API.BasePath
}

func writeViewRoutes(w io.Writer, basePath string) error {
	p := navigation.NewProvider[web.Controller]()
	mrs.Configure(p, web.ControllerFunc(nil), web.ControllerFunc(nil))
	table, err := p.Build()
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(table.Entries())+1)
	for _, e := range table.Entries() {
		data = append(data, []string{basePath + e.Pattern.String(), e.Route.Template, e.Route.Title})
	}
	if fb := table.Fallback(); fb != "" {
		data = append(data, []string{"(otherwise)", "redirect " + basePath + fb, ""})
	}

	renderTable(w, []string{"VIEW", "TEMPLATE", "TITLE"}, data)
	return nil
}

func writeAPIRoutes(w io.Writer, basePath string) {
	h := patients.NewHandler(nil, slog.New(slog.DiscardHandler), pagination.Config{})

	var data [][]string
	var walk func(prefix string, g routes.Group)
	walk = func(prefix string, g routes.Group) {
		prefix += g.Prefix
		for _, r := range g.Routes {
			summary := ""
			if r.OpenAPI != nil {
				summary = r.OpenAPI.Summary
			}
			data = append(data, []string{r.Method, prefix + r.Pattern, summary})
		}
		for _, c := range g.Children {
			walk(prefix, c)
		}
	}
	walk(basePath, h.Routes())
	data = append(data, []string{http.MethodGet, basePath + "/openapi.json", "OpenAPI document"})

	renderTable(w, []string{"METHOD", "ENDPOINT", "SUMMARY"}, data)
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
