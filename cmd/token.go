package cmd

import (
	"fmt"

	"articlelike/utils"

	"github.com/spf13/cobra"
)

var tokenUser uint

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed bearer token for a user id",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if tokenUser == 0 {
			return fmt.Errorf("--user is required")
		}
		token, err := utils.GenerateToken(tokenUser, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVar(&tokenUser, "user", 0, "user id to put in the token")
}
