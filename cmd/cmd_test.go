package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func Test_AppGraph(t *testing.T) {
	cfg := &config.Config{
		Database: config.Database{
			Host: "localhost", Port: "5432", Name: "beri", User: "beri", Password: "secret",
		},
	}
	require.NoError(t, fx.ValidateApp(appOptions(cfg)))
}

func Test_TokenSignVerify(t *testing.T) {
	require := require.New(t)
	t.Setenv("APP_JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "sign", "--uid", "42", "--phone", "79990000000")
	require.NoError(err)
	token := strings.TrimSpace(out)
	require.Equal(2, strings.Count(token, "."))

	out, err = run(t, "token", "verify", token)
	require.NoError(err)

	var s model.Session
	require.NoError(json.Unmarshal([]byte(out), &s))
	require.Equal(model.Session{UID: 42, Phone: "79990000000", IsAdmin: true}, s)
}

func Test_TokenVerifyRejectsGarbage(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "cli-secret")

	_, err := run(t, "token", "verify", "not-a-token")
	require.Error(t, err)
}

func Test_TokenWithoutSecret(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "")

	_, err := run(t, "token", "sign", "--uid", "1", "--phone", "7")
	require.ErrorContains(t, err, "APP_JWT_SECRET is not set")
}
