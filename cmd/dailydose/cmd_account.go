package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	accountName     string
	accountEmail    string
	accountPassword string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your Daily Dose account",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a free account and sign in",
	Long: `Creates an account and signs it in.

The password must be at least 8 characters and include a number, an
uppercase letter, a lowercase letter, and a special character.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.auth.Register(accountName, accountEmail, accountPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s! Your pets have been saved.\n", user.Name)
		return nil
	},
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a saved account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.auth.Login(accountEmail, accountPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", user.Name)
		return nil
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var accountWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.auth.Current()
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{accountRegisterCmd, accountLoginCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "email address")
		c.Flags().StringVar(&accountPassword, "password", "", "password")
	}
	accountRegisterCmd.Flags().StringVar(&accountName, "fullname", "", "full name")

	accountCmd.AddCommand(accountRegisterCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountWhoamiCmd)
}
