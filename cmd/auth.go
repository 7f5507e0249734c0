package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/render"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		token, err := deps.Client.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return mapAuthError(deps, err)
		}
		if err := deps.Store.SetToken(token); err != nil {
			return fmt.Errorf("storing session token: %w", err)
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Logged in")
		}
		return nil
	},
}

var registerFlags struct {
	Name     string
	Email    string
	Password string
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a new account",
	Example: `  wander register --name "Ada Lovelace" --email ada@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if registerFlags.Name == "" || registerFlags.Email == "" || registerFlags.Password == "" {
			return fmt.Errorf("--name, --email and --password are all required")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Client.Register(cmd.Context(), registerFlags.Name, registerFlags.Email, registerFlags.Password); err != nil {
			return mapAuthError(deps, err)
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Account created. Sign in with: wander login", registerFlags.Email, "<password>")
		}
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		// Silent re-auth: an invalid or expired token degrades to logged-out
		// rather than an error.
		sess := deps.Auth.Resolve(cmd.Context())
		if !sess.Authenticated {
			fmt.Println("Not logged in. Run: wander login <email> <password>")
			return nil
		}

		format := resolveFormat(deps.Config.Format)
		return render.To(globalFlags.Out, func(w io.Writer) error {
			return render.User(w, format, sess.User)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Auth.Logout(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		// Cached results belong to the account that generated them.
		if err := deps.Store.ClearResults(); err != nil {
			return fmt.Errorf("clearing cached results: %w", err)
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Logged out")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)

	registerCmd.Flags().StringVar(&registerFlags.Name, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerFlags.Email, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerFlags.Password, "password", "", "password")
}
