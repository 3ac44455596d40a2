package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the timesheet backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			if password == "" {
				fmt.Print("Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = string(raw)
			}

			resp, err := client.Login(email, password)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Signed in as %s\n", resp.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, sessions, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			if err := sessions.Clear(); err != nil {
				return err
			}

			fmt.Println("✅ Signed out")
			return nil
		},
	}
}

func forgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset token by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			if err := client.ForgotPassword(email); err != nil {
				return err
			}

			fmt.Println("✅ Reset token requested, check your inbox")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.MarkFlagRequired("email")

	return cmd
}

func resetPasswordCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			fmt.Print("New password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			if err := client.ResetPassword(token, string(raw)); err != nil {
				return err
			}

			fmt.Println("✅ Password updated, sign in with 'login'")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email")
	cmd.MarkFlagRequired("token")

	return cmd
}
