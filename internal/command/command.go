package command

import (
	"context"
	"time"

	"staffhub/internal/service"

	"github.com/google/wire"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCommand)

type Command struct {
	logger    *zap.Logger
	reconcile *service.ReconcileService
	shops     *service.ShopService
}

// NewCommand .
func NewCommand(
	logger *zap.Logger,
	reconcile *service.ReconcileService,
	shops *service.ShopService,
) *Command {
	return &Command{
		logger:    logger,
		reconcile: reconcile,
		shops:     shops,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "reconcile",
			Short: "Delete batch identities that have no employee record",
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					return err
				}
				defer cleanup()

				return command.Reconcile(cmd)
			},
		},
		newRegisterShopCommand(newCmd),
	)
}

func newRegisterShopCommand(newCmd func() (*Command, func(), error)) *cobra.Command {
	var ownerID, shopID, name string
	c := &cobra.Command{
		Use:   "register-shop",
		Short: "Create the owner record (and shop record) required by the employee API",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.RegisterShop(cmd, ownerID, shopID, name)
		},
	}
	c.Flags().StringVar(&ownerID, "owner", "", "shop owner id")
	c.Flags().StringVar(&shopID, "shop", "", "shop id (defaults to the owner id)")
	c.Flags().StringVar(&name, "name", "", "display name")
	_ = c.MarkFlagRequired("owner")
	return c
}

func (c *Command) Reconcile(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	result, err := c.reconcile.Run(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("reconcile finished: candidates=%d deleted=%d failed=%d\n", result.Candidates, result.Deleted, result.Failed)
	return nil
}

func (c *Command) RegisterShop(cmd *cobra.Command, ownerID, shopID, name string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := c.shops.Register(ctx, ownerID, shopID, name); err != nil {
		return err
	}
	cmd.Printf("shop owner %s registered\n", ownerID)
	return nil
}
