package fortune

import "lucklens/internal/domain"

// fallbackContent is the bundled static set substituted when generation fails
// entirely. It satisfies the same structural contract as generated content.
var fallbackContent = domain.GeneratedContent{
	Fortunes: []domain.FortuneItem{
		{
			Text:  "Moonshot 🚀",
			Color: "text-green-400",
			Yi:    []string{"Ape in", "Claim airdrop", "Hold strong"},
			Ji:    []string{"Hesitate", "Exit too early"},
			Score: 95,
		},
		{
			Text:  "Bullish 💰",
			Color: "text-yellow-300",
			Yi:    []string{"Watch new tokens", "Ride the trend"},
			Ji:    []string{"Overtrade", "Leverage up"},
			Score: 80,
		},
		{
			Text:  "Steady 🤖",
			Color: "text-blue-300",
			Yi:    []string{"DCA", "Learn something new"},
			Ji:    []string{"FOMO buy", "Panic sell"},
			Score: 60,
		},
		{
			Text:  "Volatile ⚡",
			Color: "text-orange-400",
			Yi:    []string{"Set stop-loss", "Review your plan"},
			Ji:    []string{"All-in one coin", "Emotional trade"},
			Score: 40,
		},
		{
			Text:  "Bearish 🥲",
			Color: "text-red-400",
			Yi:    []string{"Take a break", "Reflect"},
			Ji:    []string{"Chase pumps", "Buy the dip blindly"},
			Score: 20,
		},
		{
			Text:  "Cautious 🧊",
			Color: "text-cyan-300",
			Yi:    []string{"Check wallet safety", "Backup keys"},
			Ji:    []string{"Trust rumors", "Forget backup"},
			Score: 30,
		},
	},
	Proverbs: []string{
		"One day in crypto, three years in the real world.",
		"Don't fear buying in, don't panic selling out.",
		"If you don't harvest the leeks, there will be more next year.",
		"Stay calm in the bear, stay humble in the bull.",
		"No matter how much you gain, always secure profits.",
		"Lose money on rumors, win on trends.",
		"Invest within your means, it's not about the number of coins.",
		"Everything can go to zero, only your private key lasts forever.",
		"HODL till dawn, survive the night.",
		"Sideways markets reveal wisdom, pumps reveal human nature.",
	},
}

// FallbackContent returns the static content set. Callers must not mutate it.
func FallbackContent() *domain.GeneratedContent {
	return &fallbackContent
}
