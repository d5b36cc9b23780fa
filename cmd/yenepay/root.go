package main

import "github.com/spf13/cobra"

func newRootCmd(load loader) *cobra.Command {
	root := &cobra.Command{
		Use:   "yenepay",
		Short: "YenePay merchant tools",
		Long: `Create checkouts, query payment status and receive instant payment
notifications against the YenePay gateway.

Credentials come from YENEPAY_MERCHANT_ID, YENEPAY_TOKEN and
YENEPAY_ENVIRONMENT, or from a .env file in the working directory.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCheckoutCmd(load))
	root.AddCommand(newPDTCmd(load))
	root.AddCommand(newIPNCmd(load))

	return root
}
