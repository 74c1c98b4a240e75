package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dailydose/internal/media"
	"dailydose/internal/types"
)

var (
	feedPassphrase string
	itemTitle      string
	itemContent    string
	itemImage      string
	itemLink       string
	itemBgColor    string
	itemTextColor  string

	payTextMonthly  string
	payTextYearly   string
	payImageMonthly string
	payImageYearly  string
	payBothMonthly  string
	payBothYearly   string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse and curate the admin feed column",
	Long: `The feed column holds menu links, news posts, and two ad kinds in a
manually ordered list. Browsing is open; every mutation needs the admin
passphrase (--passphrase).`,
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		items, err := app.feed.Items()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderFeed(items))
		return nil
	},
}

func addItemRunE(itemType types.AdminItemType) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		item := types.AdminItem{
			Type:     itemType,
			Title:    itemTitle,
			Content:  itemContent,
			ImageURL: itemImage,
			LinkURL:  itemLink,
		}
		if itemType == types.ItemAdText {
			item.BackgroundColor = itemBgColor
			item.TextColor = itemTextColor
		}
		if itemType == types.ItemAdImage && item.ImageURL != "" && !media.IsDataURI(item.ImageURL) {
			if uri, err := media.EncodeFile(item.ImageURL); err == nil {
				item.ImageURL = uri
			}
		}

		added, err := app.feed.Add(feedPassphrase, item)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s item %s.\n", added.Type, added.ID)
		return nil
	}
}

var feedNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Add a news post to the top of the feed",
	RunE:  addItemRunE(types.ItemNews),
}

var feedAdImageCmd = &cobra.Command{
	Use:   "ad-image",
	Short: "Add an image ad to the top of the feed",
	RunE:  addItemRunE(types.ItemAdImage),
}

var feedAdTextCmd = &cobra.Command{
	Use:   "ad-text",
	Short: "Add a text ad to the top of the feed",
	RunE:  addItemRunE(types.ItemAdText),
}

var feedPageCmd = &cobra.Command{
	Use:   "page [title]",
	Short: "Add a menu page entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		item, err := app.feed.AddPage(feedPassphrase, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added page %q (%s).\n", item.Title, item.ID)
		return nil
	},
}

var feedDeleteCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Delete a feed item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.feed.Delete(feedPassphrase, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		return nil
	},
}

var feedMoveCmd = &cobra.Command{
	Use:   "move [from] [to]",
	Short: "Move a feed item to a new position",
	Long: `Moves the item at position "from" so it sits at position "to",
shifting everything in between by one slot. Positions are zero-based and
refer to the current display order (see "feed list").`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("from must be a position: %w", err)
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("to must be a position: %w", err)
		}

		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.feed.Move(feedPassphrase, from, to); err != nil {
			return err
		}
		items, err := app.feed.Items()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderFeed(items))
		return nil
	},
}

var feedSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update the advertising payment links",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		cfg, err := app.feed.PaymentConfig()
		if err != nil {
			return err
		}

		changed := false
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
				changed = true
			}
		}
		set(&cfg.TextMonthly, payTextMonthly)
		set(&cfg.TextYearly, payTextYearly)
		set(&cfg.ImageMonthly, payImageMonthly)
		set(&cfg.ImageYearly, payImageYearly)
		set(&cfg.BothMonthly, payBothMonthly)
		set(&cfg.BothYearly, payBothYearly)

		if changed {
			if err := app.feed.SetPaymentConfig(feedPassphrase, cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Payment links updated.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPaymentConfig(cfg))
		return nil
	},
}

func init() {
	feedCmd.PersistentFlags().StringVar(&feedPassphrase, "passphrase", "", "admin passphrase")

	for _, c := range []*cobra.Command{feedNewsCmd, feedAdImageCmd, feedAdTextCmd} {
		c.Flags().StringVar(&itemTitle, "title", "", "item title")
		c.Flags().StringVar(&itemContent, "content", "", "body text")
		c.Flags().StringVar(&itemImage, "image", "", "image URL or local file path")
		c.Flags().StringVar(&itemLink, "link", "", "read-more / click-through URL")
	}
	feedAdTextCmd.Flags().StringVar(&itemBgColor, "bg", "#FEF3C7", "background color")
	feedAdTextCmd.Flags().StringVar(&itemTextColor, "fg", "#78350F", "text color")

	feedSettingsCmd.Flags().StringVar(&payTextMonthly, "text-monthly", "", "text plan, monthly billing URL")
	feedSettingsCmd.Flags().StringVar(&payTextYearly, "text-yearly", "", "text plan, yearly billing URL")
	feedSettingsCmd.Flags().StringVar(&payImageMonthly, "image-monthly", "", "image plan, monthly billing URL")
	feedSettingsCmd.Flags().StringVar(&payImageYearly, "image-yearly", "", "image plan, yearly billing URL")
	feedSettingsCmd.Flags().StringVar(&payBothMonthly, "both-monthly", "", "combined plan, monthly billing URL")
	feedSettingsCmd.Flags().StringVar(&payBothYearly, "both-yearly", "", "combined plan, yearly billing URL")

	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedNewsCmd)
	feedCmd.AddCommand(feedAdImageCmd)
	feedCmd.AddCommand(feedAdTextCmd)
	feedCmd.AddCommand(feedPageCmd)
	feedCmd.AddCommand(feedDeleteCmd)
	feedCmd.AddCommand(feedMoveCmd)
	feedCmd.AddCommand(feedSettingsCmd)
}
