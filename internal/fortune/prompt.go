package fortune

import "fmt"

const (
	proverbMinWords = 8
	proverbMaxWords = 15
)

const fortunePromptTemplate = `Generate a single crypto trading fortune based on current real-time market conditions.

CURRENT MARKET DATA:
%s

MARKET ANALYSIS INSTRUCTIONS:
- If market cap change is positive (>0%%), lean towards bullish fortune with green/yellow colors
- If market cap change is negative (<0%%), lean towards bearish fortune with red/orange colors
- If BTC dominance is high (>45%%), focus on Bitcoin-related advice
- If BTC dominance is low (<40%%), emphasize altcoin opportunities
- If volatility is high, include risk management advice
- If volatility is low, suggest accumulation strategies

Create one fortune that reflects the current market sentiment and data. The fortune should have:
- A catchy name with appropriate emoji that matches market conditions
- 2-4 short actionable "DO" items (yi) - keep each item 2-4 words, relevant to current market
- 2-4 short "DON'T" items (ji) - keep each item 2-4 words, relevant to current market risks
- A luck score (1-100) reflecting both the fortune's positivity AND current market conditions
- Color coding that matches market sentiment (green for bullish, red for bearish, etc.)

Also generate one crypto wisdom proverb that is:
- %d-%d words
- Memorable and quotable
- Related to current market conditions and crypto trading psychology
- Mix of serious wisdom and crypto culture humor

IMPORTANT: Please respond with valid JSON in the following exact format:
{
  "fortune": {
    "text": "Fortune name with emoji",
    "color": "text-green-400",
    "yi": ["DO action 1", "DO action 2"],
    "ji": ["DON'T action 1", "DON'T action 2"],
    "score": 85
  },
  "proverb": "Single crypto wisdom proverb here"
}

Use only these color values: text-green-400, text-yellow-300, text-blue-300, text-orange-400, text-red-400, text-cyan-300, text-purple-400, text-pink-400`

const retryPromptTemplate = `Return ONLY raw JSON, no markdown, no commentary. One crypto trading fortune and one proverb (%d-%d words):
{"fortune":{"text":"name with emoji","color":"text-blue-300","yi":["do 1","do 2"],"ji":["dont 1","dont 2"],"score":55},"proverb":"proverb text"}
Allowed colors: text-green-400, text-yellow-300, text-blue-300, text-orange-400, text-red-400, text-cyan-300, text-purple-400, text-pink-400. Score is an integer 1-100. yi and ji each hold 2-4 items of 2-4 words.`

// BuildPrompt renders the full generation prompt around the market
// description. An empty description falls back to a generic instruction.
func BuildPrompt(marketDescription string) string {
	ctx := "Generate general crypto trading fortunes."
	if marketDescription != "" {
		ctx = "Current Market Context: " + marketDescription
	}
	return fmt.Sprintf(fortunePromptTemplate, ctx, proverbMinWords, proverbMaxWords)
}

// BuildRetryPrompt is the stricter, low-temperature prompt used after a parse
// failure. It demands raw JSON only.
func BuildRetryPrompt() string {
	return fmt.Sprintf(retryPromptTemplate, proverbMinWords, proverbMaxWords)
}
