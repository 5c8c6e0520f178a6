package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecomqa/purchasectl/internal/sellerconfig"
)

// NewSellerConfigCmd создаёт группу команд для seller-configs.
func NewSellerConfigCmd(outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sellerconfig",
		Short: "Bulk seller-config maintenance",
	}

	cmd.AddCommand(newAddOperationCmd(outputFn))

	return cmd
}

func newAddOperationCmd(outputFn func() *Output) *cobra.Command {
	var csvPath string
	var baseURL string
	var token string
	var operation string
	var namePrefix string

	cmd := &cobra.Command{
		Use:   "add-operation",
		Short: "Append a gateway operation to seller configs listed in a CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := outputFn()

			if token == "" {
				return fmt.Errorf("--token is required")
			}
			if !strings.HasPrefix(token, "sso-jwt ") {
				token = "sso-jwt " + token
			}

			file, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			updater := sellerconfig.New(sellerconfig.Config{
				BaseURL:   baseURL,
				AuthToken: token,
			})

			summary, err := updater.ProcessCSV(cmd.Context(), file, operation, namePrefix)
			if err != nil {
				return err
			}

			out.Print(
				[]string{"UPDATED", "SKIPPED", "FAILED"},
				[][]string{{
					strconv.Itoa(summary.Updated),
					strconv.Itoa(summary.Skipped),
					strconv.Itoa(summary.Failed),
				}},
				summary,
			)
			if summary.Failed > 0 {
				out.Error("failed resources: " + strings.Join(summary.Failures, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with resource ids in the first column")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://seller-configs-ext.cp.api.test-godaddy.com", "Seller-configs service base URL")
	cmd.Flags().StringVar(&token, "token", "", "Authorization token (sso-jwt)")
	cmd.Flags().StringVar(&operation, "operation", "VERIFY", "Gateway operation to append")
	cmd.Flags().StringVar(&namePrefix, "name-prefix", "", "Only update configs whose name starts with this prefix")
	cmd.MarkFlagRequired("csv")

	return cmd
}
