package links

import (
	"encoding/json"
	"fmt"
	"os"
)

// knownMerchants is the curated table of cancellation pages, keyed by
// the merchant name as it commonly appears on statements. Lookups
// against it are fuzzy, so minor statement noise ("NETFLIX.COM",
// "Spotify USA") still lands on the right row.
var knownMerchants = map[string]string{
	// Streaming video
	"Netflix":           "https://www.netflix.com/cancelplan",
	"Hulu":              "https://secure.hulu.com/account/cancel",
	"Disney Plus":       "https://www.disneyplus.com/account/cancel-subscription",
	"HBO Max":           "https://help.max.com/us/Answer/Detail/000001346",
	"Max":               "https://help.max.com/us/Answer/Detail/000001346",
	"Paramount Plus":    "https://help.paramountplus.com/s/article/PD-How-can-I-cancel-my-Paramount-subscription",
	"Peacock":           "https://www.peacocktv.com/account/subscription",
	"Apple TV Plus":     "https://support.apple.com/en-us/HT202039",
	"YouTube Premium":   "https://www.youtube.com/paid_memberships",
	"YouTube TV":        "https://support.google.com/youtubetv/answer/7129564",
	"Crunchyroll":       "https://www.crunchyroll.com/account/membership",
	"Curiosity Stream":  "https://curiositystream.com/account",
	"Mubi":              "https://mubi.com/account",
	"Shudder":           "https://www.shudder.com/account",
	"BritBox":           "https://www.britbox.com/account",
	"Starz":             "https://www.starz.com/settings/subscription",
	"Showtime":          "https://www.sho.com/account",
	"Sling TV":          "https://www.sling.com/account/subscription",
	"Fubo TV":           "https://support.fubo.tv/hc/en-us/articles/115005366207",
	"Philo":             "https://help.philo.com/hc/en-us/articles/360002247014",

	// Music & audio
	"Spotify":        "https://www.spotify.com/account/subscription/",
	"Apple Music":    "https://support.apple.com/en-us/HT202039",
	"Tidal":          "https://account.tidal.com/subscription",
	"Deezer":         "https://www.deezer.com/account",
	"Pandora":        "https://www.pandora.com/account/subscription",
	"Audible":        "https://www.audible.com/account/cancel-membership",
	"SiriusXM":       "https://www.siriusxm.com/cancel",
	"SoundCloud":     "https://soundcloud.com/settings/subscription",
	"iHeartRadio":    "https://www.iheart.com/my/settings/",

	// Shopping & delivery
	"Amazon Prime":     "https://www.amazon.com/gp/primecentral",
	"Walmart Plus":     "https://www.walmart.com/account/plus",
	"Instacart":        "https://www.instacart.com/store/account/manage_membership",
	"DoorDash":         "https://help.doordash.com/consumers/s/article/How-do-I-cancel-my-DashPass-subscription",
	"Uber One":         "https://help.uber.com/riders/article/cancel-uber-one",
	"Grubhub":          "https://www.grubhub.com/account/membership",
	"Shipt":            "https://www.shipt.com/account/membership",
	"Costco":           "https://www.costco.com/membership-information.html",
	"Sams Club":        "https://www.samsclub.com/account/membership",
	"Chewy":            "https://www.chewy.com/app/account/autoship",
	"Thrive Market":    "https://thrivemarket.com/account/membership",

	// Meal kits & food
	"HelloFresh":     "https://www.hellofresh.com/account-settings/plan",
	"Blue Apron":     "https://www.blueapron.com/account/cancel_subscription",
	"Home Chef":      "https://www.homechef.com/account/pause-or-cancel",
	"Factor":         "https://www.factor75.com/account-settings/plan",
	"EveryPlate":     "https://www.everyplate.com/account-settings",
	"Freshly":        "https://support.freshly.com/s/article/How-do-I-skip-pause-or-cancel",
	"Daily Harvest":  "https://www.daily-harvest.com/account/settings",

	// Fitness & wellness
	"Planet Fitness":   "https://www.planetfitness.com/about-planet-fitness/contact-us",
	"Peloton":          "https://support.onepeloton.com/hc/en-us/articles/360042087011",
	"ClassPass":        "https://classpass.com/account/membership",
	"Calm":             "https://support.calm.com/hc/en-us/articles/115002473607",
	"Headspace":        "https://help.headspace.com/hc/en-us/articles/115008371468",
	"Strava":           "https://www.strava.com/account",
	"MyFitnessPal":     "https://www.myfitnesspal.com/account/subscriptions",
	"Whoop":            "https://www.whoop.com/membership/",
	"Fitbit Premium":   "https://www.fitbit.com/settings/subscriptions",
	"Noom":             "https://web.noom.com/support/cancel-subscription/",
	"BetterHelp":       "https://www.betterhelp.com/account/settings/",
	"Talkspace":        "https://help.talkspace.com/hc/en-us/articles/360043238772",
	"24 Hour Fitness":  "https://www.24hourfitness.com/membership/cancellation/",
	"LA Fitness":       "https://www.lafitness.com/Pages/CancellationForm.aspx",
	"Equinox":          "https://www.equinox.com/membership",
	"Crunch Fitness":   "https://www.crunch.com/faq",

	// Software & cloud
	"Adobe":              "https://account.adobe.com/plans",
	"Adobe Creative Cloud": "https://account.adobe.com/plans",
	"Microsoft 365":      "https://account.microsoft.com/services/",
	"Dropbox":            "https://www.dropbox.com/account/plan",
	"Google One":         "https://one.google.com/settings",
	"iCloud":             "https://support.apple.com/en-us/HT207594",
	"Evernote":           "https://www.evernote.com/Settings.action",
	"Notion":             "https://www.notion.so/my-account",
	"Canva":              "https://www.canva.com/settings/billing-and-teams",
	"Grammarly":          "https://account.grammarly.com/subscription",
	"LastPass":           "https://lastpass.com/account_settings.php",
	"1Password":          "https://my.1password.com/profile",
	"Dashlane":           "https://app.dashlane.com/#/settings/plan",
	"NordVPN":            "https://my.nordaccount.com/billing/",
	"ExpressVPN":         "https://www.expressvpn.com/subscriptions",
	"Surfshark":          "https://my.surfshark.com/account/subscription",
	"Zoom":               "https://zoom.us/billing",
	"Slack":              "https://slack.com/admin/billing",
	"GitHub":             "https://github.com/settings/billing",
	"ChatGPT":            "https://chat.openai.com/#settings",
	"OpenAI":             "https://platform.openai.com/account/billing/overview",
	"Squarespace":        "https://account.squarespace.com/settings/billing",
	"Wix":                "https://www.wix.com/account/subscriptions",
	"GoDaddy":            "https://account.godaddy.com/subscriptions",
	"Shopify":            "https://admin.shopify.com/settings/plan",
	"Mailchimp":          "https://admin.mailchimp.com/account/billing/",

	// News & reading
	"New York Times":      "https://www.nytimes.com/cancel",
	"Wall Street Journal": "https://customercenter.wsj.com/subscription",
	"Washington Post":     "https://subscribe.washingtonpost.com/acquisition/account",
	"The Economist":       "https://myaccount.economist.com/s/my-subscriptions",
	"Medium":              "https://medium.com/me/settings",
	"Substack":            "https://substack.com/subscriptions",
	"Kindle Unlimited":    "https://www.amazon.com/kindle-unlimited/ku/central",
	"Scribd":              "https://www.scribd.com/account-settings/payment",
	"Blinkist":            "https://www.blinkist.com/en/nc/settings/subscription",
	"Masterclass":         "https://www.masterclass.com/account/subscription",
	"Skillshare":          "https://www.skillshare.com/settings/payments",
	"Coursera":            "https://www.coursera.org/my-purchases/subscriptions",
	"Udemy":               "https://www.udemy.com/dashboard/purchase-history/",
	"Duolingo":            "https://www.duolingo.com/settings/super",
	"Babbel":              "https://my.babbel.com/en/account/subscription",
	"Rosetta Stone":       "https://my.rosettastone.com/account",

	// Gaming
	"Xbox Game Pass":   "https://account.microsoft.com/services/",
	"PlayStation Plus": "https://www.playstation.com/en-us/support/subscriptions/cancel-playstation-subscriptions/",
	"Nintendo Switch Online": "https://www.nintendo.com/switch/online-service/",
	"EA Play":          "https://www.ea.com/ea-play/manage-membership",
	"Twitch":           "https://www.twitch.tv/subscriptions",
	"Discord Nitro":    "https://discord.com/settings/subscriptions",
	"Steam":            "https://store.steampowered.com/account/",

	// Dating & social
	"Tinder":  "https://www.help.tinder.com/hc/en-us/articles/115004344323",
	"Bumble":  "https://bumble.com/en/help/how-do-i-cancel-my-subscription",
	"Hinge":   "https://hingeapp.zendesk.com/hc/en-us/articles/360011318673",
	"Match":   "https://www.match.com/myaccount/subscription",
	"LinkedIn Premium": "https://www.linkedin.com/premium/cancel",

	// Personal care & boxes
	"Dollar Shave Club": "https://www.dollarshaveclub.com/account/membership",
	"Harrys":            "https://www.harrys.com/en/account/subscriptions",
	"BarkBox":           "https://www.barkbox.com/my-subscriptions",
	"Birchbox":          "https://www.birchbox.com/me/subscriptions",
	"FabFitFun":         "https://fabfitfun.com/my-account/membership/",
	"Ipsy":              "https://www.ipsy.com/account/membership",
	"Stitch Fix":        "https://www.stitchfix.com/profile/subscriptions",

	// Utilities & misc
	"Ring":          "https://account.ring.com/account/plan",
	"ADT":           "https://www.adt.com/help/faq/account-management",
	"SimpliSafe":    "https://simplisafe.com/account",
	"Experian":      "https://www.experian.com/consumer-products/cancel-membership.html",
	"Credit Karma":  "https://www.creditkarma.com/settings",
	"AAA":           "https://www.aaa.com/stop/membership",
}

// LoadKnownMerchants returns the curated table, optionally merged with
// a JSON mapping file of extra or overriding entries. A missing file
// is fine — the builtin table is used as-is. A corrupt file is
// reported (for the caller to log) alongside the builtin table.
func LoadKnownMerchants(path string) (map[string]string, error) {
	table := make(map[string]string, len(knownMerchants))
	for k, v := range knownMerchants {
		table[k] = v
	}
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return table, fmt.Errorf("read known merchants %s: %w", path, err)
	}

	extra := make(map[string]string)
	if err := json.Unmarshal(data, &extra); err != nil {
		return table, fmt.Errorf("parse known merchants %s: %w", path, err)
	}
	for k, v := range extra {
		table[k] = v
	}
	return table, nil
}
