package config

// User-facing message templates rendered by the Discord binding.
var Messages = map[string]string{
	"daily_limit":     "❌ **Daily Limit Reached**\nYou've reached your daily limit of **%d** requests. Try again tomorrow!",
	"invalid_channel": "❌ This command can only be used in designated channels. Please use one of the allowed channels.",
	"invalid_uid":     "❌ **Invalid UID**\nPlease provide a valid UID (numbers only, minimum 6 characters).",
	"invalid_region":  "❌ **Invalid Region**\nSupported regions: `IND`, `BR`, `US`, `ME`, `SAC`, `NA`",
	"api_error":       "❌ **API Error**\nFailed to connect to Free Fire services. Please try again later.",
	"max_likes":       "❌ **Maximum Likes Reached**\nThis UID has already received the maximum likes today.",
	"missing_params":  "❌ **Missing Parameters**\nUsage: `!like <uid> <region>`\n\nExample: `!like 123456789 IND`",
}
