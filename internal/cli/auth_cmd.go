package cli

import (
	"fmt"

	"github.com/alexanderramin/pilot/internal/calendar"
	"github.com/alexanderramin/pilot/internal/cli/formatter"
	"github.com/alexanderramin/pilot/internal/config"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize calendar access",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "google",
		Short: "Authorize Google Calendar and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc := app.Config.GoogleCalendar
			oc, err := calendar.LoadOAuthConfig(config.ExpandPath(gc.CredentialsFile))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tok, err := calendar.Authorize(cmd.Context(), oc, out)
			if err != nil {
				return err
			}
			tokenFile := config.ExpandPath(gc.TokenFile)
			if err := calendar.SaveToken(tokenFile, tok); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("✔ ")+"Saved token to "+tokenFile)
			return nil
		},
	})
	return cmd
}
