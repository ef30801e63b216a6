package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/osa911/portfolio-api/internal/models"
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/validation"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator account",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if err := validation.New().Var(username, "username"); err != nil {
			fail("Invalid username: 3-30 letters, digits, '_' or '-'")
		}
		if len(password) < 8 {
			fail("Password must be at least 8 characters")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fail("Failed to hash password: %v", err)
		}

		var user *models.User
		withStore(func(ctx context.Context, store repository.Store) (err error) {
			user, err = store.CreateUser(ctx, models.NewUser{Username: username, Password: string(hash)})
			if errors.Is(err, repository.ErrAlreadyExists) {
				return errors.New("username " + username + " is taken")
			}
			return err
		})
		logger.Info("✅ Created user %s (%s)", user.Username, user.ID)
	},
}

func initUserCommands() {
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().String("username", "", "Login name")
	userCreateCmd.Flags().String("password", "", "Password (min 8 characters)")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("password")
}
