package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/spf13/cobra"
)

func newSeedCommand(configFile *string) *cobra.Command {
	var (
		username  string
		password  string
		companies []string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and optional companies",
		Example: `  lapis seed --username admin --password s3cret
  lapis seed --company "Acme Studio=team@acme.io"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if username == "" {
				username = a.cfg.Auth.Admin.Username
			}
			if password == "" {
				password = a.cfg.Auth.Admin.Password
			}
			if password != "" {
				created, err := a.svc.Auth.EnsureAdmin(ctx, username, password)
				if err != nil {
					return err
				}
				if created {
					cmd.Printf("created admin %q\n", username)
				} else {
					cmd.Printf("admin %q already exists\n", username)
				}
			}

			return seedCompanies(ctx, cmd, a, companies)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (default auth.admin.username)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (default auth.admin.password)")
	cmd.Flags().StringArrayVar(&companies, "company", nil, `company to add as "Name=email", repeatable`)
	return cmd
}

func seedCompanies(ctx context.Context, cmd *cobra.Command, a *app, companies []string) error {
	for _, entry := range companies {
		name, addr, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --company %q, want Name=email", entry)
		}
		c, err := a.svc.Company.Create(ctx, &structs.CompanyBody{Name: name, Email: addr})
		var e *resp.Exception
		switch {
		case err == nil:
			cmd.Printf("added company %s <%s>\n", c.Name, c.Email)
		case errors.As(err, &e) && e.Status == http.StatusConflict:
			cmd.Printf("company <%s> already exists\n", strings.TrimSpace(addr))
		default:
			return fmt.Errorf("add company %q: %w", entry, err)
		}
	}
	return nil
}
