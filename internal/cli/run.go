package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecomqa/purchasectl/internal/config"
	"github.com/ecomqa/purchasectl/internal/pipeline"
	"github.com/ecomqa/purchasectl/internal/stages"
)

// runSummary — итоговая сводка прогона для оператора.
type runSummary struct {
	Environment string `json:"environment"`
	ShopperID   string `json:"shopper_id"`
	OrderID     string `json:"order_id,omitempty"`
	Status      string `json:"status"`
	Warnings    string `json:"warnings,omitempty"`
}

// NewRunCmd создаёт команду запуска purchase pipeline.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	var envLabel string
	var interactive bool
	var abortOnCart bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the end-to-end purchase pipeline",
		Long: `Run the purchase pipeline: provision a shopper, issue a token,
register an encrypted payment method, add an item to the cart and settle
the purchase. Without --env the environment is prompted; an empty answer
selects the default environment and fully automatic mode.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()
			out := outputFn()

			opts, err := config.ParseEnv()
			if err != nil {
				return err
			}

			defaults := config.NewDefaults()
			prompter := pipeline.NewPrompter(defaults, os.Stdin, os.Stderr)

			// Окружение: флаг > переменная окружения > приглашение.
			// Пустой ответ на приглашение означает окружение по
			// умолчанию и автоматический режим.
			if envLabel == "" {
				envLabel = opts.Environment
			}
			if envLabel == "" {
				answer := prompter.Ask(fmt.Sprintf(
					"Enter environment label (e.g. 'dev', 'staging') or press Enter for '%s' and automatic mode: ",
					config.DefaultEnvironment,
				))
				if answer == "" {
					envLabel = config.DefaultEnvironment
				} else {
					envLabel = answer
					if !cmd.Flags().Changed("interactive") {
						interactive = true
					}
				}
			}

			if !cmd.Flags().Changed("abort-on-cart-failure") {
				abortOnCart = opts.AbortOnCartFailure
			}

			endpoints := config.ResolveEndpoints(envLabel)
			logger.Info("resolved environment",
				"environment", envLabel,
				"shopper_api", endpoints.ShopperAPI,
				"sso_api", endpoints.SSOAPI,
				"payment_api", endpoints.PaymentAPI,
				"basket_api", endpoints.BasketAPI,
			)

			client := stages.New(stages.Config{
				Endpoints: endpoints,
				Defaults:  defaults,
				Timeout:   time.Duration(opts.HTTPTimeoutSec) * time.Second,
				Logger:    logger,
			})

			var params pipeline.Params = pipeline.NewAutoParams(defaults)
			if interactive {
				params = prompter
			}

			driver := pipeline.New(pipeline.Config{
				Stages:             client,
				Params:             params,
				Defaults:           defaults,
				AbortOnCartFailure: abortOnCart,
				Logger:             logger,
			})

			res, err := driver.Run(cmd.Context())
			if err != nil {
				// Частичные идентификаторы выводятся и при прерывании
				if res != nil && res.ShopperID != "" {
					out.Success("Shopper ID: " + res.ShopperID.String())
				}
				return err
			}

			summary := runSummary{
				Environment: envLabel,
				ShopperID:   res.ShopperID.String(),
				OrderID:     res.OrderID.String(),
				Status:      "COMPLETED",
			}
			if res.PurchaseErr != nil {
				summary.Status = "PURCHASE_FAILED"
			}
			if res.Warnings != nil {
				summary.Warnings = res.Warnings.Error()
			}

			out.Print(
				[]string{"ENVIRONMENT", "SHOPPER_ID", "ORDER_ID", "STATUS"},
				[][]string{{summary.Environment, summary.ShopperID, orDash(summary.OrderID), summary.Status}},
				summary,
			)
			if summary.Warnings != "" {
				out.Success("Warnings: " + summary.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envLabel, "env", "", "Environment label (empty: prompt, default 'test')")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for per-stage overrides")
	cmd.Flags().BoolVar(&abortOnCart, "abort-on-cart-failure", false, "Abort the run when the cart stage fails")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
