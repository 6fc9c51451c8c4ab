package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(knockoutCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(resultCmd)

	resultCmd.Flags().Bool("walkover", false, "The loser did not play")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments [club]",
	Short: "List tournaments, optionally of one club",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/tournaments"
		if len(args) == 1 {
			endpoint += "?club_id=" + args[0]
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var drawCmd = &cobra.Command{
	Use:   "draw <tournament>",
	Short: "Show the draw of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournaments/"+args[0]+"/draw", nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <tournament>",
	Short: "Close registration and generate the draw",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournaments/"+args[0]+"/draw", nil)
	},
}

var knockoutCmd = &cobra.Command{
	Use:   "knockout <tournament>",
	Short: "Build the knockout phase once every zone is played",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournaments/"+args[0]+"/knockout", nil)
	},
}

var readyCmd = &cobra.Command{
	Use:   "ready <tournament>",
	Short: "List the matches that can be played now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournaments/"+args[0]+"/ready", nil)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings <tournament> <zone>",
	Short: "Show the table of a zone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		zone := strings.ToUpper(args[1])
		return performRequest(http.MethodGet, "/tournaments/"+args[0]+"/zones/"+zone+"/standings", nil)
	},
}

var resultCmd = &cobra.Command{
	Use:   "result <tournament> <match> <winner> [sets...]",
	Short: "Record a match result, sets written as 6-4",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := tournament.Result{WinnerID: args[2]}
		for _, raw := range args[3:] {
			set, err := parseSet(raw)
			if err != nil {
				return err
			}
			res.Sets = append(res.Sets, set)
		}
		walkover, _ := cmd.Flags().GetBool("walkover")
		res.Walkover = walkover
		return performRequest(http.MethodPost, "/tournaments/"+args[0]+"/matches/"+args[1]+"/result", res)
	},
}

// parseSet reads a set score such as "6-4", side A first.
func parseSet(raw string) (tournament.SetScore, error) {
	a, b, ok := strings.Cut(raw, "-")
	if !ok {
		return tournament.SetScore{}, fmt.Errorf("invalid set %q, expected games like 6-4", raw)
	}
	gamesA, errA := strconv.Atoi(a)
	gamesB, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return tournament.SetScore{}, fmt.Errorf("invalid set %q, expected games like 6-4", raw)
	}
	return tournament.SetScore{A: gamesA, B: gamesB}, nil
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	if dryRun {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		url += sep + "dry_run=true"
	}
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
