package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dccd/cmd/dccd/ui"
	"dccd/internal/api"
	"dccd/internal/route"
	"dccd/internal/session"
)

var (
	routeFile  string
	routeStage int
	routeJSON  bool
)

// routeCmd renders a roadmap offline
var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compose and render a roadmap from recommendations",
	Long: `Builds the activity roadmap without the interactive UI.

Input is a recommendation response body (or a bare list of recommendations)
read from --file, "-" for stdin, or the last results saved in the session.

Examples:
  dccd route --file recs.json
  dccd route --file recs.json --stage 1
  dccd route --json`,
	Args: cobra.NoArgs,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeFile, "file", "f", "", `Recommendation JSON file ("-" for stdin, default: saved session results)`)
	routeCmd.Flags().IntVar(&routeStage, "stage", -1, "Highlight stage to render (default: the whole route)")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "Print the graph as JSON instead of a diagram")
}

func runRoute(cmd *cobra.Command, args []string) error {
	recs, err := readRecommendations(cmd.InOrStdin())
	if err != nil {
		return err
	}

	c := route.Compose(recs)
	stage := routeStage
	if stage < 0 {
		stage = len(c.Sequence)
	}
	g := route.BuildGraph(c, stage)
	logger.Debug("route composed",
		zap.Int("recommendations", len(recs)),
		zap.Int("route_length", len(c.Sequence)),
		zap.Strings("unmatched", c.Unmatched),
	)

	out := cmd.OutOrStdout()
	if routeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	s := ui.DefaultStyles()
	fmt.Fprintln(out, ui.RenderLegend(s))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.RenderDiagram(s, g, ui.DiagramOptions{NodeWidth: ui.DefaultNodeWidth}))
	fmt.Fprintln(out)
	if len(c.Sequence) == 0 {
		fmt.Fprintln(out, "No route: none of the recommendations match a known activity.")
	} else {
		fmt.Fprint(out, "Route:")
		for i, code := range c.Sequence {
			fmt.Fprintf(out, " %s %s", route.StepLabel(i), code)
			if i < len(c.Sequence)-1 {
				fmt.Fprint(out, " →")
			}
		}
		fmt.Fprintln(out)
	}
	if len(c.Unmatched) > 0 {
		fmt.Fprintf(out, "Unmatched: %v\n", c.Unmatched)
	}
	return nil
}

// readRecommendations loads recommendations from --file, stdin or the session.
func readRecommendations(stdin io.Reader) ([]api.Recommendation, error) {
	var (
		raw []byte
		err error
	)
	switch routeFile {
	case "":
		ws, cfg, lerr := loadConfig()
		if lerr != nil {
			return nil, lerr
		}
		store, oerr := session.Open(cfg, ws)
		if oerr != nil {
			return nil, fmt.Errorf("failed to open session: %w", oerr)
		}
		defer store.Close()
		resp, rerr := session.Results(store)
		if rerr != nil {
			return nil, fmt.Errorf("no input file and no usable saved results: %w", rerr)
		}
		return resp.Recommendations, nil
	case "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(routeFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendations: %w", err)
	}
	return parseRecommendations(raw)
}

// parseRecommendations accepts a full response body or a bare array.
func parseRecommendations(raw []byte) ([]api.Recommendation, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []api.Recommendation
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("failed to parse recommendations: %w", err)
		}
		return recs, nil
	}
	resp, err := session.DecodeResults(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return resp.Recommendations, nil
}
