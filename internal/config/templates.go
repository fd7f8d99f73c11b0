package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Asset Price Monitor Configuration

[monitor]
# Alert when the latest close has fallen this far (percent) from the
# trailing high.
drop_threshold_percent = 2.0
# Trailing window for the high, in calendar days.
lookback_days = 30
# Suppress repeat alerts for a ticker for this many days after one fires.
# 1 = at most one alert per calendar day.
suppression_window_days = 1

# Tracked assets.
[[monitor.tickers]]
symbol = "GLD"
name = "Gold"

[[monitor.tickers]]
symbol = "SLV"
name = "Silver"

[[monitor.tickers]]
symbol = "COPX"
name = "Copper (Global X)"

[[monitor.tickers]]
symbol = "ICOP"
name = "Copper (iShares)"

[email]
enabled = true
smtp_host = "smtp.gmail.com"
smtp_port = 587
# Credentials can also be supplied via SENDER_EMAIL / SENDER_PASSWORD /
# RECIPIENT_EMAIL environment variables (or a local .env file).
username = ""
password = ""
from = ""
to = ""

[store]
# Where alert state and the run log are persisted:
#   "gist"   - a GitHub Gist (set gist.id / gist.token or GIST_ID / GIST_TOKEN)
#   "sqlite" - a local embedded database
#   "memory" - no persistence (alerts may repeat across runs)
backend = "gist"
sqlite_path = ""

[store.gist]
id = ""
token = ""
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
