package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/trip"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and clear local session state",
	Long: `Commands for the local session database: the stored auth token and the
cached results of the most recent plan and suggestion generations.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show what is stored locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		token := "(not set)"
		if t := deps.Store.Token(); t != "" {
			token = redact(t)
		}

		rows := [][2]string{
			{"db_path", deps.Store.Path()},
			{"auth_token", token},
		}
		for _, kind := range []trip.Kind{trip.KindPlan, trip.KindSuggest} {
			label := "cached_" + string(kind)
			res, found, err := deps.Store.GetResult(kind)
			if err != nil || !found {
				rows = append(rows, [2]string{label, "(none)"})
				continue
			}
			c := trip.Normalize(trip.RawTripRecord{TripType: string(kind), Data: res.Raw})
			rows = append(rows, [2]string{label,
				fmt.Sprintf("%s (%s)", c.Title, res.CreatedAt.Format("2006-01-02 15:04"))})
		}
		printKVTable(rows)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached generation results (keeps the auth token)",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Store.ClearResults(); err != nil {
			return fmt.Errorf("clearing cached results: %w", err)
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Cached results cleared")
		}
		return nil
	},
}

// redact shows just enough of a token to recognise it.
func redact(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}
