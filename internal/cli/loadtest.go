package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecomqa/purchasectl/internal/loadtest"
)

// NewLoadTestCmd создаёт команду нагрузочного прогона.
func NewLoadTestCmd(outputFn func() *Output) *cobra.Command {
	var url string
	var requests int
	var concurrency int
	var body string
	var headers []string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Fire a series of POST requests and report latency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := outputFn()

			headerMap := make(map[string]string, len(headers))
			for _, h := range headers {
				key, val, ok := strings.Cut(h, "=")
				if !ok {
					return fmt.Errorf("invalid header %q, expected key=value", h)
				}
				headerMap[key] = val
			}

			runner := loadtest.New(loadtest.Config{
				URL:         url,
				Requests:    requests,
				Concurrency: concurrency,
				Headers:     headerMap,
				Body:        []byte(body),
				MetricsAddr: metricsAddr,
			})

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out.Print(
				[]string{"TOTAL", "OK", "FAILED", "RATE", "MIN", "AVG", "MAX"},
				[][]string{{
					strconv.Itoa(report.Total),
					strconv.Itoa(report.Succeeded),
					strconv.Itoa(report.Failed),
					fmt.Sprintf("%.1f%%", report.SuccessRate()),
					report.MinLatency.String(),
					report.AvgLatency.String(),
					report.MaxLatency.String(),
				}},
				report,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Target endpoint")
	cmd.Flags().IntVar(&requests, "requests", 100, "Total number of requests")
	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "Number of concurrent workers")
	cmd.Flags().StringVar(&body, "body", "", "Request body (sent as-is)")
	cmd.Flags().StringArrayVar(&headers, "header", nil, "Request header, key=value (repeatable)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus /metrics on this address while running")
	cmd.MarkFlagRequired("url")

	return cmd
}
