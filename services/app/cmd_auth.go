package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/adapters/session"
)

func newRegisterCmd(env *appEnv) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := env.client.Register(cmd.Context(), args[0], args[1], displayName)
			if err != nil {
				return err
			}

			if err := env.sessions.Save(session.Session{
				Token:       result.Token,
				UserID:      result.User.ID,
				Email:       result.User.Email,
				DisplayName: result.User.DisplayName,
			}); err != nil {
				return err
			}

			fmt.Printf("Registered and logged in as %s\n", result.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	return cmd
}

func newLoginCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in to the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := env.client.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if err := env.sessions.Save(session.Session{
				Token:       result.Token,
				UserID:      result.User.ID,
				Email:       result.User.Email,
				DisplayName: result.User.DisplayName,
			}); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", result.User.Email)
			return nil
		},
	}
}

func newLogoutCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := env.sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := env.requireSession()
			if err != nil {
				return err
			}
			if s.DisplayName != "" {
				fmt.Printf("%s (%s)\n", s.DisplayName, s.Email)
				return nil
			}
			fmt.Println(s.Email)
			return nil
		},
	}
}
