package main

import (
	"fmt"
	"strconv"
	"strings"

	"yenepay-go/pkg/checkout"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type checkoutFlags struct {
	items         []string
	orderID       string
	successURL    string
	cancelURL     string
	ipnURL        string
	failureURL    string
	expiresAfter  int
	expiresInDays int
	handlingFee   string
	deliveryFee   string
	discount      string
	tax1          string
	tax2          string
	dryRun        bool
}

func newCheckoutCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create a checkout and print its payment URL",
	}

	cmd.AddCommand(newCheckoutProcessCmd(load, checkout.ProcessExpress,
		"express", "Buy a single item"))
	cmd.AddCommand(newCheckoutProcessCmd(load, checkout.ProcessCart,
		"cart", "Buy one or more items"))

	return cmd
}

func newCheckoutProcessCmd(load loader, process checkout.Process, use, short string) *cobra.Command {
	f := &checkoutFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: `  yenepay checkout express --item "PC-1:50000:1"
  yenepay checkout cart --item "Shirt:350.50:2:SKU-1" --item "Hat:120:1" --delivery-fee 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			items, err := parseItems(f.items)
			if err != nil {
				return err
			}

			opts, err := f.options(cmd)
			if err != nil {
				return err
			}

			c, err := checkout.New(process, a.client, items, opts...)
			if err != nil {
				return err
			}

			if f.dryRun {
				payload, err := c.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), payload)
				return nil
			}

			url, err := c.GetURL(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&f.items, "item", nil, "item as name:price:quantity[:id], repeatable")
	flags.StringVar(&f.orderID, "order-id", "", "merchant order id")
	flags.StringVar(&f.successURL, "success-url", "", "redirect after a successful payment")
	flags.StringVar(&f.cancelURL, "cancel-url", "", "redirect after a cancelled payment")
	flags.StringVar(&f.ipnURL, "ipn-url", "", "instant payment notification url")
	flags.StringVar(&f.failureURL, "failure-url", "", "redirect after a failed payment")
	flags.IntVar(&f.expiresAfter, "expires-after", 0, "minutes before the checkout expires")
	flags.IntVar(&f.expiresInDays, "expires-in-days", 1, "days before the checkout expires")
	flags.StringVar(&f.handlingFee, "handling-fee", "", "total items handling fee")
	flags.StringVar(&f.deliveryFee, "delivery-fee", "", "total items delivery fee")
	flags.StringVar(&f.discount, "discount", "", "total items discount")
	flags.StringVar(&f.tax1, "tax1", "", "total items tax 1")
	flags.StringVar(&f.tax2, "tax2", "", "total items tax 2")
	flags.BoolVar(&f.dryRun, "dry-run", false, "print the payload instead of sending it")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// options turns the flags that were actually set into checkout options.
func (f *checkoutFlags) options(cmd *cobra.Command) ([]checkout.Option, error) {
	changed := cmd.Flags().Changed

	opts := []checkout.Option{
		checkout.WithMerchantOrderID(f.orderID),
		checkout.WithSuccessURL(f.successURL),
		checkout.WithCancelURL(f.cancelURL),
		checkout.WithIPNURL(f.ipnURL),
		checkout.WithFailureURL(f.failureURL),
		checkout.WithExpiresInDays(f.expiresInDays),
	}
	if changed("expires-after") {
		opts = append(opts, checkout.WithExpiresAfter(f.expiresAfter))
	}

	fees := []struct {
		flag  string
		value string
		opt   func(decimal.Decimal) checkout.Option
	}{
		{"handling-fee", f.handlingFee, checkout.WithHandlingFee},
		{"delivery-fee", f.deliveryFee, checkout.WithDeliveryFee},
		{"discount", f.discount, checkout.WithDiscount},
		{"tax1", f.tax1, checkout.WithTax1},
		{"tax2", f.tax2, checkout.WithTax2},
	}
	for _, fee := range fees {
		if !changed(fee.flag) {
			continue
		}
		d, err := decimal.NewFromString(fee.value)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", fee.flag, fee.value, err)
		}
		opts = append(opts, fee.opt(d))
	}

	return opts, nil
}

func parseItems(specs []string) (checkout.Items, error) {
	items := make(checkout.Items, 0, len(specs))
	for _, spec := range specs {
		item, err := parseItem(spec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItem reads "name:price:quantity[:id]".
func parseItem(spec string) (*checkout.Item, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("invalid --item %q: want name:price:quantity[:id]", spec)
	}

	price, err := decimal.NewFromString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid price in --item %q: %w", spec, err)
	}
	qty, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity in --item %q: %w", spec, err)
	}

	var opts []checkout.ItemOption
	if len(parts) == 4 {
		opts = append(opts, checkout.WithItemID(parts[3]))
	}

	return checkout.NewItem(parts[0], price, qty, opts...)
}
