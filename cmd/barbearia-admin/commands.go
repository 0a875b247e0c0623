package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	ucDirectory "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/directory"
	ucTenant "github.com/BruksfildServices01/barbearia-agenda/internal/usecase/tenant"
)

type app struct {
	open func() (*gorm.DB, error)
	now  func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	if a.now == nil {
		a.now = time.Now
	}

	root := &cobra.Command{
		Use:           "barbearia-admin",
		Short:         "Operator tasks for the barbershop scheduling service",
		SilenceUsage:  true,
	}
	root.AddCommand(a.provisionCmd(), a.existsCmd(), a.catalogCmd())
	return root
}

func (a *app) provisionCmd() *cobra.Command {
	var in ucTenant.ProvisionTenantInput

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create a tenant with its starter catalog",
		Long: `Create a tenant, its "all employees" placeholder and the starter services.
Everything is written together; a key already in use is refused.

Examples:
  barbearia-admin provision --key barbearia-centro --name "Barbearia Centro" --created-by ops
  barbearia-admin provision --key b2 --name B2 --opening 08:00 --closing 18:00 --days 1,2,3,4,5,6 --created-by ops`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open()
			if err != nil {
				return err
			}

			disp := audit.NewDispatcher(audit.New(db))
			defer disp.Close()

			uc := ucTenant.NewProvisionTenant(repository.NewTenantGormRepository(db), disp, a.now)
			boot, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "PROVISIONED %s (%d services)\n", boot.Tenant.Key, len(boot.Services))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Key, "key", "", "tenant key (contribuinte)")
	f.StringVar(&in.Name, "name", "", "display name")
	f.StringVar(&in.Phone, "phone", "", "contact phone")
	f.StringVar(&in.Address, "address", "", "street address")
	f.StringVar(&in.OpeningTime, "opening", "", "opening time HH:MM")
	f.StringVar(&in.ClosingTime, "closing", "", "closing time HH:MM")
	f.IntSliceVar(&in.OperatingDays, "days", nil, "operating weekdays, 0=Sunday")
	f.StringVar(&in.Timezone, "timezone", "", "IANA timezone (default from DEFAULT_TIMEZONE)")
	f.StringVar(&in.CreatedBy, "created-by", "", "operator id")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("created-by")

	return cmd
}

func (a *app) existsCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "exists <key>",
		Short: "Print true or false depending on whether the tenant exists",
		Long: `Print true or false. Backend failures print false unless --strict is set,
in which case they are reported and the exit code is non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.open()
			if err != nil {
				if strict {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), false)
				return nil
			}

			uc := ucTenant.NewExistsTenant(repository.NewTenantGormRepository(db))
			if !strict {
				fmt.Fprintln(cmd.OutOrStdout(), uc.Execute(cmd.Context(), args[0]))
				return nil
			}

			ok, err := uc.Strict(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "report backend failures instead of printing false")
	return cmd
}

func (a *app) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <key>",
		Short: "Show a tenant with its placeholder employee and active services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			db, err := a.open()
			if err != nil {
				return err
			}

			tenants := ucTenant.NewManage(repository.NewTenantGormRepository(db), audit.Nop{}, a.now)
			t, err := tenants.Get(cmd.Context(), key)
			if err != nil {
				return err
			}

			dirRepo := repository.NewDirectoryGormRepository(db)
			sentinel, err := dirRepo.FindEmployee(cmd.Context(), key, models.AllEmployeesID)
			if err != nil {
				return err
			}

			services, err := ucDirectory.New(dirRepo, audit.Nop{}, a.now).ListServices(cmd.Context(), key, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s-%s  %s  active=%t\n",
				t.Key, t.Name, t.OpeningTime, t.ClosingTime, t.Timezone, t.Active)
			fmt.Fprintf(out, "sentinel %s  %s\n", sentinel.ID, sentinel.Name)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tMIN\tPRICE")
			for _, s := range services {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Category, s.DurationMin, s.Price.StringFixed(2))
			}
			return w.Flush()
		},
	}
}
