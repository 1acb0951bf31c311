package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/auth"
	"github.com/DhavalSuthar-24/scorebook/pkg/token"
)

func newAddUserCommand() *cobra.Command {
	var (
		username string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a login",
		Long:  "Create a login. The first admin has to be created this way.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			_, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			repo := auth.NewAuthRepository(config.DB)
			u, err := auth.CreateAccount(cmd.Context(), repo, username, password, role)
			if err != nil {
				return err
			}
			log.Info("user created", zap.Uint("user_id", u.ID), zap.String("username", u.Username), zap.String("role", u.Role))
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (id %d, role %s)\n", u.Username, u.ID, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (at least 8 characters)")
	cmd.Flags().StringVarP(&role, "role", "r", token.RoleManager, "admin, manager or viewer")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newTokenCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an existing user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			u, err := auth.NewAuthRepository(config.DB).GetUserByUsername(cmd.Context(), username)
			if err != nil {
				return err
			}
			if u == nil {
				return errors.New("user not found")
			}

			tok, err := token.GenerateJWT(u.ID, u.Role, cfg.JWT.AccessTokenSecret, cfg.JWT.AccessTokenExpiryMinutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
