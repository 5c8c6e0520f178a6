// purchasectl — инструмент оператора для end-to-end проверки
// purchase pipeline в тестовых окружениях.
//
// Использование:
//
//	purchasectl [--json] <command> [flags]
//
// Команды:
//
//	run           Полный прогон purchase pipeline
//	sellerconfig  Массовое обновление seller-configs по CSV
//	loadtest      Нагрузочный прогон endpoint-а
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecomqa/purchasectl/internal/cli"
	"github.com/ecomqa/purchasectl/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	telemetry.SetupLogger()

	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "purchasectl",
		Short:         "purchasectl — purchase pipeline test tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewRunCmd(outputFn),
		cli.NewSellerConfigCmd(outputFn),
		cli.NewLoadTestCmd(outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
