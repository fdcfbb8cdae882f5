package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/repository"
)

var grantCmd = &cobra.Command{
	Use:   "grant <user-id> <admin|viewer>",
	Short: "Assign a role to an identity provider user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		role := model.Role(args[1])
		if role != model.RoleAdmin && role != model.RoleViewer {
			return fmt.Errorf("unknown role %q", args[1])
		}

		_, database, err := connect()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if err := repository.NewRoleRepository(database).Grant(ctx, userID, role); err != nil {
			return err
		}
		log.Info().Str("user_id", userID.String()).Str("role", string(role)).Msg("role granted")
		return nil
	},
}
