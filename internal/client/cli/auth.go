package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cosmospt/internal/client/models"
	"github.com/spf13/cobra"
)

type credentialsOptions struct {
	name string
}

// sessionView is the JSON form of a session; the token stays local.
type sessionView struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Server string `json:"server"`
}

func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &credentialsOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a player account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCredentials(cmd, rootOpts, opts, "register", func(ctx context.Context, e *env, name string, pw []byte) (*models.Session, error) {
				return e.auth.Register(ctx, name, pw)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "player name (prompted when empty)")
	return cmd
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &credentialsOptions{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCredentials(cmd, rootOpts, opts, "login", func(ctx context.Context, e *env, name string, pw []byte) (*models.Session, error) {
				return e.auth.Login(ctx, name, pw)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "player name (prompted when empty)")
	return cmd
}

type authFunc func(ctx context.Context, e *env, name string, password []byte) (*models.Session, error)

func runCredentials(cmd *cobra.Command, rootOpts *RootOptions, opts *credentialsOptions, action string, auth authFunc) error {
	ctx := cmd.Context()
	formatter := rootOpts.formatter(cmd)
	reader := rootOpts.input(cmd)

	name := opts.name
	if name == "" {
		var err error
		name, err = GetSimpleText(reader, "Enter name", formatter.GetErrWriter())
		if err != nil {
			return WrapExitError(ExitCommandError, "read name", err)
		}
	}

	// password is wiped by the auth service
	password, err := GetPassword(reader, formatter.GetErrWriter())
	if err != nil {
		return WrapExitError(ExitCommandError, "read password", err)
	}

	e, err := openEnv(ctx, rootOpts.Config)
	if err != nil {
		return err
	}
	defer e.Close()

	formatter.VerboseLog("%s %q at %s", action, name, rootOpts.Config.ServerURL)
	s, err := auth(ctx, e, name, password)
	if err != nil {
		return apiError(action, err)
	}

	view := sessionView{UserID: s.UserID, Name: s.Name, Server: s.Server}
	return formatter.Success(view, func(w io.Writer) {
		okColor.Fprintf(w, "Welcome aboard, %s!", s.Name)
		dimColor.Fprintf(w, " (id %s)\n", s.UserID)
	})
}

func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and cached catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, rootOpts.Config)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.auth.Logout(ctx); err != nil {
				return WrapExitError(ExitCommandError, "logout", err)
			}
			return rootOpts.formatter(cmd).Success(map[string]bool{"loggedOut": true}, func(w io.Writer) {
				fmt.Fprintln(w, "Logged out.")
			})
		},
	}
}
