package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vss-session/internal/app"
	"vss-session/internal/dto"
	"vss-session/internal/models"

	"github.com/spf13/cobra"
)

func loginCmd(run runner) *cobra.Command {
	var credentials models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if err := a.Controller.Login(ctx, credentials); err != nil {
				return err
			}
			return printJSON(out, dto.NewSessionResponse(a.Controller.State()))
		}),
	}

	cmd.Flags().StringVar(&credentials.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd(run runner) *cobra.Command {
	var (
		data models.RegistrationData
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if role != "" {
				parsed := models.ParseRole(role)
				data.Role = &parsed
			}
			if err := a.Controller.Register(ctx, data); err != nil {
				return err
			}
			return printJSON(out, dto.NewSessionResponse(a.Controller.State()))
		}),
	}

	cmd.Flags().StringVar(&data.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&data.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&data.ConfirmPassword, "confirm", "", "Password confirmation")
	cmd.Flags().StringVar(&data.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "", "Requested role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func logoutCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			a.Controller.Logout(ctx)
			fmt.Fprintln(out, "Signed out")
			return nil
		}),
	}
}

func statusCmd(run runner) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the restored session",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if refresh && a.Controller.State().IsAuthenticated {
				if err := a.Controller.RefreshProfile(ctx); err != nil {
					return err
				}
			}
			return printJSON(out, dto.NewSessionResponse(a.Controller.State()))
		}),
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Reload the profile from the backend")
	return cmd
}

func routeCmd(run runner) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "route <path>",
		Short: "Show what navigating to path would render",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(c *cobra.Command, args []string) error {
		target := models.RouteTarget{Path: args[0]}
		if role != "" {
			parsed := models.ParseRole(role)
			if !parsed.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			target.RequiredRole = &parsed
		}

		return run(func(ctx context.Context, a *app.App, out io.Writer) error {
			state := a.Controller.State()

			var decision models.RouteDecision
			if target.IsGuestOnly() {
				decision = a.Guard.DecideGuestOnly(state.IsAuthenticated, state.IsLoading)
			} else {
				decision = a.Guard.DecideForState(state, target)
			}

			return printJSON(out, dto.RouteResponse{
				Target:   target.Path,
				Decision: decision,
				Redirect: decision.RedirectPath(),
			})
		})(c, args)
	}

	cmd.Flags().StringVar(&role, "role", "", "Role the target requires")
	return cmd
}

func usersCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin)",
	}

	var (
		params dto.ListUsersParams
		role   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if role != "" {
				parsed := models.ParseRole(role)
				if !parsed.Valid() {
					return fmt.Errorf("unknown role %q", role)
				}
				params.Role = &parsed
			}
			users, err := a.Users.ListUsers(ctx, params)
			if err != nil {
				return err
			}
			return printJSON(out, users)
		}),
	}
	list.Flags().IntVar(&params.Page, "page", 1, "Page number")
	list.Flags().IntVar(&params.Limit, "limit", 20, "Items per page")
	list.Flags().StringVar(&params.Search, "search", "", "Name or email filter")
	list.Flags().StringVar(&params.SortBy, "sort-by", "", "Sort field")
	list.Flags().StringVar(&params.SortOrder, "sort-order", "", "asc or desc")
	list.Flags().StringVar(&role, "role", "", "Role filter")

	cmd.AddCommand(
		list,
		userRoleCmd(run, "approve", "Grant a pending user the colab role", func(ctx context.Context, a *app.App, id string) (*models.User, error) {
			return a.Users.ApproveUser(ctx, id)
		}),
		userRoleCmd(run, "revoke", "Return a user to pending approval", func(ctx context.Context, a *app.App, id string) (*models.User, error) {
			return a.Users.RevokeUser(ctx, id)
		}),
	)
	return cmd
}

func userRoleCmd(run runner, use, short string, change func(ctx context.Context, a *app.App, id string) (*models.User, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <user-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		return run(func(ctx context.Context, a *app.App, out io.Writer) error {
			user, err := change(ctx, a, id)
			if err != nil {
				return err
			}
			return printJSON(out, user)
		})(c, args)
	}
	return cmd
}

func passwordCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover a forgotten password",
	}

	forgot := &cobra.Command{
		Use:   "forgot <email>",
		Short: "Send a recovery code",
		Args:  cobra.ExactArgs(1),
	}
	forgot.RunE = func(c *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if err := a.Auth.RequestPasswordReset(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(out, "If the account exists, a recovery code has been sent")
			return nil
		})(c, args)
	}

	verify := &cobra.Command{
		Use:   "verify <email> <code>",
		Short: "Check a recovery code",
		Args:  cobra.ExactArgs(2),
	}
	verify.RunE = func(c *cobra.Command, args []string) error {
		return run(func(ctx context.Context, a *app.App, out io.Writer) error {
			valid, err := a.Auth.VerifyResetCode(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(out, dto.VerifyCodeResponse{Valid: valid})
		})(c, args)
	}

	var form dto.ResetPasswordForm
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a recovery code",
		RunE: run(func(ctx context.Context, a *app.App, out io.Writer) error {
			if err := a.Auth.ResetPassword(ctx, form.Email, form.Code, form.NewPassword, form.ConfirmPassword); err != nil {
				return err
			}
			fmt.Fprintln(out, "Password updated")
			return nil
		}),
	}
	reset.Flags().StringVar(&form.Email, "email", "", "Account email")
	reset.Flags().StringVar(&form.Code, "code", "", "Recovery code")
	reset.Flags().StringVar(&form.NewPassword, "password", "", "New password")
	reset.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "New password confirmation")
	_ = reset.MarkFlagRequired("email")
	_ = reset.MarkFlagRequired("code")
	_ = reset.MarkFlagRequired("password")
	_ = reset.MarkFlagRequired("confirm")

	cmd.AddCommand(forgot, verify, reset)
	return cmd
}

func serveCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the session over the local HTTP bridge",
		RunE: run(func(ctx context.Context, a *app.App, _ io.Writer) error {
			return a.Serve(ctx)
		}),
	}
}
