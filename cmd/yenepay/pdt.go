package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newPDTCmd(load loader) *cobra.Command {
	var orderID, transactionID string

	cmd := &cobra.Command{
		Use:   "pdt",
		Short: "Query the payment status of an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			resp, err := a.client.CheckPDTStatus(cmd.Context(), orderID, transactionID, a.client.UseSandbox())
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(resp.Fields))
			for k := range resp.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			out := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintf(out, "%s=%s\n", k, resp.Fields[k])
			}
			fmt.Fprintf(out, "completed=%t\n", resp.Completed())
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order-id", "", "merchant order id")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "gateway transaction id")
	_ = cmd.MarkFlagRequired("order-id")
	_ = cmd.MarkFlagRequired("transaction-id")

	return cmd
}
