package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/session"
	"github.com/spf13/cobra"
)

var (
	tokenUID   int64
	tokenPhone string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and inspect session tokens",
}

var tokenSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print an admin session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := newCodec()
		if err != nil {
			return err
		}

		token, err := codec.Sign(model.Session{UID: tokenUID, Phone: tokenPhone, IsAdmin: true})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var tokenVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify a session token and print its payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec, err := newCodec()
		if err != nil {
			return err
		}

		s, err := codec.Verify(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

func init() {
	tokenSignCmd.Flags().Int64Var(&tokenUID, "uid", 0, "user id")
	tokenSignCmd.Flags().StringVar(&tokenPhone, "phone", "", "user phone")
	_ = tokenSignCmd.MarkFlagRequired("uid")
	_ = tokenSignCmd.MarkFlagRequired("phone")

	tokenCmd.AddCommand(tokenSignCmd, tokenVerifyCmd)
}

func newCodec() (*session.Codec, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return session.NewCodec(cfg.Auth.Secret)
}
