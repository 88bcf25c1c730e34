// Package main provides localization for the routemock CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Run a page against a declarative suite of mocked network responses": "宣言的なモックスイートを適用してページを実行",

		// run command
		"Load a suite, open the page, and report rule activity": "スイートを読み込み、ページを開いてルールの実行状況を報告",
		"Mock suite YAML file":                                  "モックスイートのYAMLファイル",
		"Rule id to wait for after navigation":                  "ページ移動後に待機するルールID",
		"Fulfillment count to wait for":                         "待機する応答回数",
		"Wait timeout in milliseconds":                          "待機タイムアウト（ミリ秒）",
		"Time to keep the page open when no rule is waited on":  "ルールを待機しない場合にページを開いておく時間",
		"Interception backend (chromedp or playwright)":         "インターセプトバックエンド (chromedp または playwright)",
		"Run browser in non-headless mode":                      "非ヘッドレスモードでブラウザを実行",
		"Path to Chrome executable (falls back to CHROME_PATH env, then system default)": "Chrome実行ファイルのパス（CHROME_PATH環境変数、次にシステムデフォルトにフォールバック）",
		"Ignore HTTPS certificate errors":                                  "HTTPS証明書エラーを無視",
		"HTTP proxy server (e.g., http://proxy:8080)":                      "HTTPプロキシサーバー（例: http://proxy:8080）",
		"Append a JSONL transcript of interception decisions to this file": "インターセプト判定のJSONLトランスクリプトをこのファイルに追記",
		"Print the summary as a Markdown table":                            "サマリーをMarkdownテーブルとして出力",
		"Log level (debug, info, warn, error)":                             "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                                          "すべてのログ出力を抑制",

		// validate command
		"Check a suite file without launching a browser": "ブラウザを起動せずにスイートファイルを検証",
		"Suite %q is valid (%d rules)":                   "スイート %q は有効です（ルール %d 件）",
	})
}
